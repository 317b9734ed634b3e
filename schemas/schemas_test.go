package schemas_test

import (
	"encoding/json"
	"testing"

	"github.com/equilibria/burnout-risk/internal/schemas"
	embedded "github.com/equilibria/burnout-risk/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, name := range embedded.Names() {
		t.Run(name, func(t *testing.T) {
			content, err := embedded.Load(name)
			require.NoError(t, err, "schema should be embedded")

			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(content), &schemaObj), "schema file should be valid JSON")

			_, hasType := schemaObj["type"]
			_, hasSchema := schemaObj["$schema"]
			assert.True(t, hasType && hasSchema, "schema should declare $schema and type")
		})
	}
}

func TestLoad_Unknown(t *testing.T) {
	_, err := embedded.Load("missing.schema.json")
	assert.Error(t, err)
}

func TestRiskResultSchema(t *testing.T) {
	content, err := embedded.Load(embedded.RiskResult)
	require.NoError(t, err)

	valid := `{
		"burnout_probability": 91.11,
		"risk_index_raw": 0.938,
		"inputs_used": ["sleep", "deadlines"],
		"factors": {"sleep": 1.0, "deadlines": 0.8}
	}`
	assert.NoError(t, schemas.ValidateJSONString(content, valid))

	unknownFactor := `{
		"burnout_probability": 50,
		"risk_index_raw": 0.55,
		"inputs_used": ["sleep"],
		"factors": {"mood": 0.5}
	}`
	assert.Error(t, schemas.ValidateJSONString(content, unknownFactor))
}

func TestForecastResultSchema_RequiresFullHorizon(t *testing.T) {
	content, err := embedded.Load(embedded.ForecastResult)
	require.NoError(t, err)

	short := `{"forecast": [0.5], "lower_bound": [0.4], "upper_bound": [0.6]}`
	err = schemas.ValidateJSONString(content, short)
	require.Error(t, err)

	var validationErr *schemas.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Errors, 3)
}

func TestMetricExtractionSchema(t *testing.T) {
	content, err := embedded.Load(embedded.MetricExtraction)
	require.NoError(t, err)

	assert.NoError(t, schemas.ValidateJSONString(content, `{"sentiment_score": -0.2}`))
	assert.NoError(t, schemas.ValidateJSONString(content, `{"stress_self_report": 7, "deadlines_next_7_days": 2}`))
	assert.Error(t, schemas.ValidateJSONString(content, `{"stress_self_report": 11}`))
	assert.Error(t, schemas.ValidateJSONString(content, `{"deadlines_next_7_days": 2.5}`))
	assert.Error(t, schemas.ValidateJSONString(content, `{"sleep_hours": "seven"}`))
	assert.Error(t, schemas.ValidateJSONString(content, `["not", "an", "object"]`))
}
