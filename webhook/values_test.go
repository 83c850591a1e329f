package webhook_test

import (
	"testing"

	"formlink/formlink_go_form_service/webhook"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeValueNil(t *testing.T) {
	assert.Nil(t, webhook.NormalizeValue(nil))
}

func TestNormalizeValueScalar(t *testing.T) {
	assert.Equal(t, "hello", webhook.NormalizeValue("hello"))
	assert.Equal(t, 42.0, webhook.NormalizeValue(42.0))
	assert.Equal(t, true, webhook.NormalizeValue(true))
}

func TestNormalizeValueSelectOption(t *testing.T) {
	value := map[string]any{"id": "selabc", "name": "Option A", "color": "blue"}

	assert.Equal(t, "Option A", webhook.NormalizeValue(value))
}

func TestNormalizeValueWrapperValue(t *testing.T) {
	value := map[string]any{"value": "raw"}

	assert.Equal(t, "raw", webhook.NormalizeValue(value))
}

func TestNormalizeValueNamePreferredOverValue(t *testing.T) {
	value := map[string]any{"name": "A", "value": "B"}

	assert.Equal(t, "A", webhook.NormalizeValue(value))
}

func TestNormalizeValueOpaqueObject(t *testing.T) {
	value := map[string]any{"url": "https://example.com/a.png", "size": 100.0}

	assert.Equal(t, value, webhook.NormalizeValue(value))
}

func TestNormalizeValueArray(t *testing.T) {
	value := []any{
		map[string]any{"name": "A"},
		map[string]any{"name": "B"},
	}

	assert.Equal(t, []any{"A", "B"}, webhook.NormalizeValue(value))
}

func TestNormalizeValueArrayDropsEmptyElements(t *testing.T) {
	value := []any{"keep", nil, "also"}

	assert.Equal(t, []any{"keep", "also"}, webhook.NormalizeValue(value))
}

func TestNormalizeValueNestedArray(t *testing.T) {
	value := []any{
		[]any{map[string]any{"name": "inner"}},
		map[string]any{"value": 7.0},
	}

	assert.Equal(t, []any{[]any{"inner"}, 7.0}, webhook.NormalizeValue(value))
}
