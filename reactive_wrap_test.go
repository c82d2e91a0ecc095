package reactive

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	t.Run("is idempotent", func(t *testing.T) {
		raw := map[string]any{"a": 1}

		h := WrapObject(raw)
		assert.Same(t, h, WrapObject(raw))
		assert.Same(t, h, Wrap(raw))
		assert.Same(t, h, Wrap(h))

		assert.True(t, IsReactive(h))
		assert.False(t, IsReactive(raw))
		assert.Equal(t, reflect.ValueOf(raw).Pointer(), reflect.ValueOf(ToRaw(h)).Pointer())

		list := &[]any{1}
		a := WrapArray(list)
		assert.Same(t, a, Wrap(list))
		assert.Same(t, list, ToRaw(a))
	})

	t.Run("leaves other values alone", func(t *testing.T) {
		assert.Equal(t, 1, Wrap(1))
		assert.Equal(t, "a", ToRaw("a"))
		assert.Nil(t, Wrap(nil))
		assert.Nil(t, WrapObject(nil))
		assert.Nil(t, WrapArray(nil))
		assert.False(t, IsReactive([]any{1}))
	})

	t.Run("wraps nested records lazily", func(t *testing.T) {
		log := []string{}

		raw := map[string]any{
			"user": map[string]any{"name": "alice"},
		}
		o := WrapObject(raw)

		user := Field[*Object](o, "user")
		require.NotNil(t, user)
		assert.Same(t, user, Field[*Object](o, "user"))

		NewEffect(func() {
			log = append(log, Field[string](Field[*Object](o, "user"), "name"))
		})

		user.Set("name", "bob")
		Flush()

		assert.Equal(t, []string{"alice", "bob"}, log)
		assert.Equal(t, "bob", raw["user"].(map[string]any)["name"])
	})

	t.Run("stores raw values", func(t *testing.T) {
		raw := map[string]any{}
		child := map[string]any{"a": 1}

		o := WrapObject(raw)
		o.Set("child", WrapObject(child))

		assert.IsType(t, map[string]any{}, raw["child"])
		assert.Same(t, WrapObject(child), o.Get("child"))
	})

	t.Run("skips unchanged writes", func(t *testing.T) {
		o := WrapObject(map[string]any{"a": 1, "f": math.NaN()})
		NewEffect(func() {
			o.Get("a")
			o.Get("f")
		})

		o.Set("a", 1)
		o.Set("f", math.NaN())
		assert.Equal(t, 0, Pending())

		o.Set("a", 1.0)
		assert.Equal(t, 1, Pending())
	})

	t.Run("has and delete", func(t *testing.T) {
		log := []bool{}

		o := WrapObject(map[string]any{})
		NewEffect(func() {
			log = append(log, o.Has("x"))
		})

		o.Set("x", 1)
		Flush()
		o.Delete("x")
		Flush()
		o.Delete("x")
		assert.Equal(t, 0, Pending())

		assert.Equal(t, []bool{false, true, false}, log)
	})

	t.Run("keys track the shape only", func(t *testing.T) {
		log := []string{}

		o := WrapObject(map[string]any{"b": 1, "a": 2})
		NewEffect(func() {
			log = append(log, strings.Join(o.Keys(), ","))
		})

		o.Set("a", 3)
		assert.Equal(t, 0, Pending())

		o.Set("c", 4)
		Flush()
		o.Delete("b")
		Flush()

		assert.Equal(t, []string{"a,b", "a,b,c", "a,c"}, log)
	})

	t.Run("iterates entries", func(t *testing.T) {
		o := WrapObject(map[string]any{"b": 2, "a": 1})

		keys := []string{}
		values := []any{}
		for k, v := range o.All() {
			keys = append(keys, k)
			values = append(values, v)
		}

		assert.Equal(t, []string{"a", "b"}, keys)
		assert.Equal(t, []any{1, 2}, values)
		assert.Equal(t, 2, o.Len())
	})
}

func TestArray(t *testing.T) {
	t.Run("push and pop", func(t *testing.T) {
		log := []int{}

		list := &[]any{1, 2}
		a := WrapArray(list)
		NewEffect(func() {
			log = append(log, a.Len())
		})

		assert.Equal(t, 3, a.Push(3))
		Flush()
		assert.Equal(t, 3, a.Pop())
		Flush()
		assert.Nil(t, WrapArray(&[]any{}).Pop())

		assert.Equal(t, []int{2, 3, 2}, log)
		assert.Equal(t, []any{1, 2}, *list)
	})

	t.Run("index reads past the end are tracked", func(t *testing.T) {
		log := []any{}

		list := &[]any{}
		a := WrapArray(list)
		NewEffect(func() {
			log = append(log, a.At(2))
		})

		a.Set(2, "c")
		Flush()

		assert.Equal(t, []any{nil, "c"}, log)
		assert.Equal(t, []any{nil, nil, "c"}, *list)
	})

	t.Run("set only notifies the index", func(t *testing.T) {
		log := []string{}

		a := WrapArray(&[]any{"x", "y"})
		NewEffect(func() { log = append(log, Elem[string](a, 0)) })
		NewEffect(func() { log = append(log, Elem[string](a, 1)) })

		a.Set(1, "z")
		a.Set(0, "x")
		assert.Equal(t, 1, Pending())
		Flush()

		assert.Equal(t, []string{"x", "y", "z"}, log)
		assert.Panics(t, func() { a.Set(-1, "w") })
	})

	t.Run("truncate", func(t *testing.T) {
		log := []any{}

		list := &[]any{1, 2, 3}
		a := WrapArray(list)
		NewEffect(func() {
			log = append(log, a.At(1))
		})

		a.Truncate(5)
		assert.Equal(t, 0, Pending())

		a.Truncate(1)
		Flush()

		assert.Equal(t, []any{2, nil}, log)
		assert.Equal(t, []any{1}, *list)
	})

	t.Run("values wraps nested records", func(t *testing.T) {
		inner := map[string]any{"a": 1}
		a := WrapArray(&[]any{inner, 2})

		values := a.Values()
		require.Len(t, values, 2)
		assert.Same(t, WrapObject(inner), values[0])
		assert.Equal(t, 2, values[1])
	})
}
