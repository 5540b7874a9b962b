package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timerModeStruct struct {
	Mode string `validate:"timermode"`
}

type slugStruct struct {
	Slug string `validate:"required,slug,max=16"`
}

func TestValidator_TimerMode(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		mode    string
		wantErr bool
	}{
		{"STUDY", false},
		{"BREAK_SHORT", false},
		{"BREAK_LONG", false},
		{"", false},
		{"study", true},
		{"NAP", true},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			err := v.ValidateStruct(timerModeStruct{Mode: tt.mode})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_Slug(t *testing.T) {
	v := GetValidator()

	assert.NoError(t, v.ValidateStruct(slugStruct{Slug: "common-pack"}))
	assert.NoError(t, v.ValidateStruct(slugStruct{Slug: "tomato2"}))
	assert.Error(t, v.ValidateStruct(slugStruct{Slug: "Tomato"}))
	assert.Error(t, v.ValidateStruct(slugStruct{Slug: "to mato"}))
	assert.Error(t, v.ValidateStruct(slugStruct{Slug: "a-very-long-slug-name"}))
}

func TestValidator_DurationRange(t *testing.T) {
	v := GetValidator()
	tag := durationTag(60, 3600)

	assert.NoError(t, v.ValidateVar(60, tag))
	assert.NoError(t, v.ValidateVar(3600, tag))
	assert.Error(t, v.ValidateVar(59, tag))
	assert.Error(t, v.ValidateVar(3601, tag))
}

func TestFormatValidationError(t *testing.T) {
	err := GetValidator().ValidateStruct(slugStruct{})
	require.Error(t, err)

	fields := FormatValidationError(err)
	assert.Equal(t, "This field is required", fields["slug"])

	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, "Invalid request format", FormatValidationError(assert.AnError)["error"])
}
