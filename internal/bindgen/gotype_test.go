package bindgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoType(t *testing.T) {
	tests := map[string]string{
		"const uint8_t *":     "*C.uint8_t",
		"uint8_t **":          "**C.uint8_t",
		"const uint8_t **":    "**C.uint8_t",
		"const size_t":        "C.size_t",
		"uint32_t":            "C.uint32_t",
		"bool":                "C.bool",
		"_Bool":               "C.bool",
		"void *":              "unsafe.Pointer",
		"void **":             "*unsafe.Pointer",
		"const void *":        "unsafe.Pointer",
		"void":                "",
		"const char *":        "*C.char",
		"unsigned int":        "C.uint",
		"unsigned long long":  "C.ulonglong",
		"struct bb_ctx *":     "*C.struct_bb_ctx",
		"uint8_t [32]":        "*C.uint8_t",
		"void (*)(int)":       "*[0]byte",
		"uint8_t *__restrict": "*C.uint8_t",
		"volatile int":        "C.int",
	}
	for in, want := range tests {
		got, err := goType(in)
		if err != nil {
			t.Errorf("goType(%q) failed: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("goType(%q) = %q, want %q", in, got, want)
		}
	}

	_, err := goType("unsigned weird thing")
	assert.Error(t, err)
}

func TestExportedName(t *testing.T) {
	assert.Equal(t, "NewPippenger", exportedName("new_pippenger"))
	assert.Equal(t, "Blake2sToField", exportedName("blake2s_to_field"))
	assert.Equal(t, "AcirSerializeProofIntoFields", exportedName("acir_serialize_proof_into_fields"))
	assert.Equal(t, "Bbmalloc", exportedName("bbmalloc"))
}

func TestParamName(t *testing.T) {
	assert.Equal(t, "numPoints", paramName("num_points", 0))
	assert.Equal(t, "g2x", paramName("g2x", 0))
	assert.Equal(t, "range_", paramName("range", 3))
	assert.Equal(t, "type_", paramName("type", 0))
	assert.Equal(t, "C_", paramName("C", 0))
	assert.Equal(t, "arg2", paramName("", 2))
	assert.Equal(t, "private", paramName("_private", 0))
}

func TestNewWrapper(t *testing.T) {
	w, err := newWrapper(Function{Name: "pippenger_unsafe", Result: "void", Params: []Param{
		{"pippenger_ptr", "void *"}, {"scalars_ptr", "void *"}, {"from", "size_t"}, {"range", "size_t"}, {"", "void *"},
	}})
	require.NoError(t, err)
	assert.Equal(t, "PippengerUnsafe", w.GoName)
	assert.Equal(t, "pippengerPtr unsafe.Pointer, scalarsPtr unsafe.Pointer, from C.size_t, range_ C.size_t, arg4 unsafe.Pointer", w.Params)
	assert.Equal(t, "pippengerPtr, scalarsPtr, from, range_, arg4", w.Args)
	assert.Empty(t, w.Result)
	assert.True(t, w.usesUnsafe())
}

func TestNewWrapperRejectsUncallable(t *testing.T) {
	_, err := newWrapper(Function{Name: "bb_log", Result: "int", Params: []Param{{"fmt", "const char *"}}, Variadic: true})
	assert.ErrorContains(t, err, "variadic")

	_, err = newWrapper(Function{Name: "bb_weird", Result: "long double long", Params: nil})
	assert.Error(t, err)
}

func TestRenderRejectsGoNameCollision(t *testing.T) {
	_, err := Render(File{Package: "demo", Functions: []Function{
		{Name: "bb_free", Result: "void"},
		{Name: "bb__free", Result: "void"},
	}})
	assert.ErrorContains(t, err, "both map to Go name BbFree")
}
