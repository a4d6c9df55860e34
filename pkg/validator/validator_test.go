package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHHMM(t *testing.T) {
	require.NoError(t, Register())
	v := binding.Validator.Engine().(*validator.Validate)

	type window struct {
		Start string `binding:"hhmm"`
	}

	assert.NoError(t, v.Struct(window{Start: "09:00"}))
	assert.NoError(t, v.Struct(window{Start: "23:59"}))
	assert.Error(t, v.Struct(window{Start: "9:00"}))
	assert.Error(t, v.Struct(window{Start: "25:00"}))
	assert.Error(t, v.Struct(window{Start: "noon"}))
}
