package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInventory_Valid(t *testing.T) {
	data := []byte(`{"sheets":[
		{"id":"a1b2c3d4","label":"Art Card 20x30","width":20,"height":30,"grade":"Art Card","gsm":300,"stock":500,"unit_cost":"12.5"},
		{"id":"e5f6a7b8","label":"Maplitho 23x36","width":23,"height":36,"stock":0,"unit_cost":4}
	]}`)
	assert.NoError(t, ValidateInventory(data))
}

func TestValidateInventory_EmptySheets(t *testing.T) {
	assert.NoError(t, ValidateInventory([]byte(`{"sheets":[]}`)))
}

func TestValidateInventory_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing sheets", `{}`},
		{"zero width", `{"sheets":[{"id":"x","label":"x","width":0,"height":30,"stock":1}]}`},
		{"negative stock", `{"sheets":[{"id":"x","label":"x","width":20,"height":30,"stock":-1}]}`},
		{"fractional stock", `{"sheets":[{"id":"x","label":"x","width":20,"height":30,"stock":1.5}]}`},
		{"width as string", `{"sheets":[{"id":"x","label":"x","width":"20","height":30,"stock":1}]}`},
		{"missing id", `{"sheets":[{"label":"x","width":20,"height":30,"stock":1}]}`},
		{"bad cost", `{"sheets":[{"id":"x","label":"x","width":20,"height":30,"stock":1,"unit_cost":"cheap"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInventory([]byte(tt.data))
			require.Error(t, err)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")
			assert.NotEmpty(t, validationErr.Errors)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestValidateInventory_MalformedJSON(t *testing.T) {
	err := ValidateInventory([]byte(`{ invalid json }`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidateProfiles(t *testing.T) {
	assert.NoError(t, ValidateProfiles([]byte(`[{"name":"Offset","gutter":0.125,"margin":0.375,"allow_rotation":true}]`)))

	err := ValidateProfiles([]byte(`[{"name":"","gutter":-1}]`))
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.GreaterOrEqual(t, len(validationErr.Errors), 2)
}

func TestValidateJSONString_BadSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestInventorySchema_Embedded(t *testing.T) {
	assert.Contains(t, InventorySchema(), `"sheets"`)
}
