package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDocumentSetGet(t *testing.T) {
	doc := NewDocument()
	doc.Set("a", "one")
	doc.Set("b", true)
	doc.Set("a", "two") // overwrite keeps position

	assert.Equal(t, []string{"a", "b"}, doc.Keys())
	assert.Equal(t, 2, doc.Len())

	v, ok := doc.Get("a")
	require.True(t, ok)
	assert.Equal(t, "two", v)

	_, ok = doc.Get("missing")
	assert.False(t, ok)
}

func TestDocumentDelete(t *testing.T) {
	doc := NewDocument()
	doc.Set("a", 1)
	doc.Set("b", 2)
	doc.Set("c", 3)

	doc.Delete("b")
	assert.Equal(t, []string{"a", "c"}, doc.Keys())
	assert.False(t, doc.Has("b"))

	// deleting a missing key is a no-op
	doc.Delete("b")
	assert.Equal(t, 2, doc.Len())
}

func TestDocumentTypedAccessors(t *testing.T) {
	doc := NewDocument()
	doc.Set("str", "value")
	doc.Set("num", int64(3))
	doc.Set("yes", true)
	doc.Set("no", false)
	doc.Set("strTrue", "anything")
	doc.Set("strFalse", "false")
	doc.Set("strEmpty", "")
	doc.Set("list", []any{"x", "y"})
	nested := NewDocument()
	nested.Set("inner", "v")
	doc.Set("map", nested)

	assert.Equal(t, "value", doc.GetString("str"))
	assert.Equal(t, "", doc.GetString("num"), "non-string values read as empty string")
	assert.Equal(t, "", doc.GetString("missing"))

	assert.True(t, doc.GetBool("yes"))
	assert.False(t, doc.GetBool("no"))
	assert.True(t, doc.GetBool("strTrue"), "non-empty strings count as true")
	assert.False(t, doc.GetBool("strFalse"))
	assert.False(t, doc.GetBool("strEmpty"))
	assert.False(t, doc.GetBool("missing"))

	assert.Equal(t, []any{"x", "y"}, doc.GetList("list"))
	assert.Nil(t, doc.GetList("missing"))
	assert.Nil(t, doc.GetList("str"))

	assert.Equal(t, "v", doc.GetMap("map").GetString("inner"))
	assert.Equal(t, 0, doc.GetMap("missing").Len())
}

func TestMergeFillsGaps(t *testing.T) {
	target := NewDocument()
	target.Set("kept", "target")

	defaults := NewDocument()
	defaults.Set("kept", "defaults")
	defaults.Set("added", "defaults")

	target.Merge(defaults)

	assert.Equal(t, "target", target.GetString("kept"), "existing keys are never overwritten")
	assert.Equal(t, "defaults", target.GetString("added"))
}

func TestMergeRecursesIntoMappings(t *testing.T) {
	targetInner := NewDocument()
	targetInner.Set("a", "target")
	target := NewDocument()
	target.Set("nested", targetInner)

	defaultsInner := NewDocument()
	defaultsInner.Set("a", "defaults")
	defaultsInner.Set("b", "defaults")
	defaults := NewDocument()
	defaults.Set("nested", defaultsInner)

	target.Merge(defaults)

	nested := target.GetMap("nested")
	assert.Equal(t, "target", nested.GetString("a"))
	assert.Equal(t, "defaults", nested.GetString("b"))
}

func TestMergeLeavesSequencesUntouched(t *testing.T) {
	target := NewDocument()
	target.Set("list", []any{"target"})

	defaults := NewDocument()
	defaults.Set("list", []any{"defaults", "more"})

	target.Merge(defaults)

	assert.Equal(t, []any{"target"}, target.GetList("list"), "sequences are not concatenated")
}

func TestMergeCopiesDeeply(t *testing.T) {
	defaultsInner := NewDocument()
	defaultsInner.Set("a", "one")
	defaults := NewDocument()
	defaults.Set("nested", defaultsInner)
	defaults.Set("list", []any{"x"})

	target := NewDocument()
	target.Merge(defaults)

	// mutating the target must not leak into the defaults
	target.GetMap("nested").Set("a", "changed")
	target.Set("list", append(target.GetList("list"), "y"))

	assert.Equal(t, "one", defaults.GetMap("nested").GetString("a"))
	assert.Equal(t, []any{"x"}, defaults.GetList("list"))
}

func TestCloneIsIndependent(t *testing.T) {
	inner := NewDocument()
	inner.Set("a", "one")
	doc := NewDocument()
	doc.Set("nested", inner)
	doc.Set("list", []any{"x"})

	clone := doc.Clone()
	clone.GetMap("nested").Set("a", "changed")
	clone.Set("extra", true)

	assert.Equal(t, "one", doc.GetMap("nested").GetString("a"))
	assert.False(t, doc.Has("extra"))
	assert.Equal(t, doc.Keys(), []string{"nested", "list"})
}

func TestPlain(t *testing.T) {
	inner := NewDocument()
	inner.Set("b", true)
	doc := NewDocument()
	doc.Set("a", "one")
	doc.Set("nested", inner)
	doc.Set("list", []any{int64(1), inner.Clone()})

	plain := doc.Plain()
	assert.Equal(t, "one", plain["a"])
	assert.Equal(t, map[string]any{"b": true}, plain["nested"])
	assert.Equal(t, []any{int64(1), map[string]any{"b": true}}, plain["list"])
}

// drawDocument generates a random document with nested mappings,
// sequences and scalars.
func drawDocument(t *rapid.T, label string, depth int) *Document {
	doc := NewDocument()
	keys := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-z]{1,6}`), 0, 5, rapid.ID[string]).Draw(t, label+"-keys")
	for _, key := range keys {
		doc.Set(key, drawValue(t, label+"-"+key, depth))
	}
	return doc
}

func drawValue(t *rapid.T, label string, depth int) any {
	maxKind := 4
	if depth > 0 {
		maxKind = 6
	}
	switch rapid.IntRange(0, maxKind).Draw(t, label+"-kind") {
	case 0:
		return rapid.StringMatching(`[a-z0-9]{0,8}`).Draw(t, label+"-str")
	case 1:
		return rapid.Bool().Draw(t, label+"-bool")
	case 2:
		return rapid.Int64().Draw(t, label+"-int")
	case 3:
		return nil
	case 4:
		return rapid.Float64Range(-1e9, 1e9).Draw(t, label+"-float")
	case 5:
		n := rapid.IntRange(0, 3).Draw(t, label+"-len")
		list := make([]any, n)
		for i := range list {
			list[i] = drawValue(t, label+"-elem", depth-1)
		}
		return list
	default:
		return drawDocument(t, label+"-doc", depth-1)
	}
}

func docsEqual(t *testing.T, want, got *Document) {
	t.Helper()
	require.Equal(t, want.Keys(), got.Keys())
	require.Equal(t, want.Plain(), got.Plain())
}

func TestMergeIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		target := drawDocument(rt, "target", 2)
		defaults := drawDocument(rt, "defaults", 2)

		target.Merge(defaults)
		once := target.Clone()
		target.Merge(defaults)

		docsEqual(t, once, target)
	})
}

func TestMergeNeverOverwrites(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		target := drawDocument(rt, "target", 2)
		defaults := drawDocument(rt, "defaults", 2)

		// snapshot the target's own scalar and sequence values
		before := target.Clone()
		target.Merge(defaults)

		for _, key := range before.Keys() {
			origVal, _ := before.Get(key)
			mergedVal, ok := target.Get(key)
			require.True(t, ok)
			if _, isDoc := origVal.(*Document); isDoc {
				// nested mappings merge recursively, only gaps change
				continue
			}
			require.Equal(t, plainValue(origVal), plainValue(mergedVal))
		}
	})
}
