package cli

import (
	"testing"

	"github.com/alexanderramin/ganttkit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarFormValues_ToBar(t *testing.T) {
	v := barFormValues{
		ID:            " deploy ",
		Label:         "Deploy",
		Bundle:        "release",
		HasHandles:    choiceYes,
		Immobile:      choiceNo,
		PushOnOverlap: choiceUnset,
		DragLeft:      "-2.5",
		DragRight:     "",
	}

	b, err := v.toBar()
	require.NoError(t, err)
	assert.Equal(t, "deploy", b.Config.ID)
	assert.Equal(t, "Deploy", b.LabelName())
	assert.Equal(t, "release", b.Config.BundleName())
	assert.Nil(t, b.Config.Class, "blank answers leave the field absent")
	require.NotNil(t, b.Config.Label)
	assert.Nil(t, b.Config.Label.Color)
	assert.True(t, domain.Flag(b.Config.HasHandles))
	require.NotNil(t, b.Config.Immobile)
	assert.False(t, *b.Config.Immobile)
	assert.Nil(t, b.Config.PushOnOverlap)
	require.NotNil(t, b.Config.DragLimitLeft)
	assert.Equal(t, -2.5, *b.Config.DragLimitLeft)
	assert.Nil(t, b.Config.DragLimitRight)
	assert.Nil(t, b.Config.HTML)
}

func TestBarFormValues_ToBarRejectsBadNumber(t *testing.T) {
	_, err := barFormValues{ID: "a", DragRight: "far"}.toBar()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "drag limit right")
}

func TestValidateOptionalNumber(t *testing.T) {
	assert.NoError(t, validateOptionalNumber(""))
	assert.NoError(t, validateOptionalNumber(" 12 "))
	assert.NoError(t, validateOptionalNumber("1e3"))
	assert.Error(t, validateOptionalNumber("abc"))
	assert.Error(t, validateOptionalNumber("Inf"))
	assert.Error(t, validateOptionalNumber("NaN"))
}

func TestBarForm_DefaultsTriStates(t *testing.T) {
	v := barFormValues{ID: "a", Immobile: choiceYes}
	require.NotNil(t, barForm(&v))
	assert.Equal(t, choiceUnset, v.HasHandles)
	assert.Equal(t, choiceYes, v.Immobile)
	assert.Equal(t, choiceUnset, v.PushOnOverlap)
}

func TestParseStyleFlags(t *testing.T) {
	style, err := parseStyleFlags([]string{"background=#fff", "opacity=0.5", "width=10px", "z=NaN"})
	require.NoError(t, err)
	assert.Equal(t, "#fff", style["background"].String())
	n, ok := style["opacity"].Number()
	assert.True(t, ok)
	assert.Equal(t, 0.5, n)
	assert.False(t, style["width"].IsNumber())
	assert.False(t, style["z"].IsNumber())

	empty, err := parseStyleFlags(nil)
	require.NoError(t, err)
	assert.Nil(t, empty)

	_, err = parseStyleFlags([]string{"=red"})
	assert.Error(t, err)
}
