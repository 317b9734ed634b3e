package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equilibria/burnout-risk/internal/types"
)

// execute runs the CLI in-process and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("LOG_LEVEL", "")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestScoreCommand_Flags(t *testing.T) {
	out, err := execute(t, "", "score",
		"--sleep-hours", "4", "--deadlines", "6", "--work-hours", "40", "--stress", "9", "--sentiment", "-0.8")
	require.NoError(t, err)

	var result types.RiskResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 91.11, result.BurnoutProbability)
	assert.Equal(t, 0.938, result.RiskIndexRaw)
}

func TestScoreCommand_ScenarioWithOverride(t *testing.T) {
	out, err := execute(t, "", "score", "--scenario", "burnout", "--sleep-hours", "8")
	require.NoError(t, err)

	var result types.RiskResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 0.0, result.Factors["sleep"])
	assert.Less(t, result.BurnoutProbability, 91.11)
}

func TestScoreCommand_InputFileAndOut(t *testing.T) {
	input := writeFile(t, "metrics.json", `{"sleep_hours": 5, "stress_self_report": 7}`)
	outPath := filepath.Join(t.TempDir(), "nested", "result.json")

	stdout, err := execute(t, "", "score", "--input", input, "--out", outPath)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var result types.RiskResult
	require.NoError(t, json.Unmarshal(content, &result))
	assert.Equal(t, []string{"sleep", "stress"}, result.InputsUsed)
}

func TestScoreCommand_NoRenormalize(t *testing.T) {
	out, err := execute(t, "", "score", "--sleep-hours", "4")
	require.NoError(t, err)
	var renormalized types.RiskResult
	require.NoError(t, json.Unmarshal([]byte(out), &renormalized))

	out, err = execute(t, "", "score", "--sleep-hours", "4", "--no-renormalize")
	require.NoError(t, err)
	var raw types.RiskResult
	require.NoError(t, json.Unmarshal([]byte(out), &raw))

	assert.Equal(t, 1.0, renormalized.RiskIndexRaw)
	assert.Less(t, raw.RiskIndexRaw, renormalized.RiskIndexRaw)
}

func TestScoreCommand_Text(t *testing.T) {
	out, err := execute(t, "", "score", "--scenario", "balanced", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "BURNOUT RISK")
	assert.Contains(t, out, "strongest burnout drivers")
}

func TestScoreCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "no inputs", args: []string{"score"}, wantErr: "No valid inputs provided"},
		{name: "unknown scenario", args: []string{"score", "--scenario", "finals"}, wantErr: "finals"},
		{name: "missing input file", args: []string{"score", "--input", "/nonexistent/metrics.json"}, wantErr: "failed to read input file"},
		{name: "bad format", args: []string{"score", "--sleep-hours", "6", "--format", "yaml"}, wantErr: "unknown format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestForecastCommand(t *testing.T) {
	out, err := execute(t, "", "forecast", "--scores", "0.2,0.3,0.4,0.5")
	require.NoError(t, err)

	var result types.ForecastResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Forecast, 14)
	assert.InDelta(t, 0.7, result.Forecast[0], 1e-9)
	assert.Len(t, result.LowerBound, 14)
	assert.Len(t, result.UpperBound, 14)
}

func TestForecastCommand_InputFile(t *testing.T) {
	for _, content := range []string{`[0.2, 0.3, 0.4, 0.5]`, `{"past_scores": [0.2, 0.3, 0.4, 0.5]}`} {
		out, err := execute(t, "", "forecast", "--input", writeFile(t, "history.json", content))
		require.NoError(t, err, content)

		var result types.ForecastResult
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.InDelta(t, 0.7, result.Forecast[0], 1e-9)
	}
}

func TestForecastCommand_Errors(t *testing.T) {
	_, err := execute(t, "", "forecast", "--scores", "0.5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient history")

	_, err = execute(t, "", "forecast")
	assert.Error(t, err)

	_, err = execute(t, "", "forecast", "--scores", "0.1,0.2", "--input", "history.json")
	assert.Error(t, err)

	_, err = execute(t, "", "forecast", "--input", writeFile(t, "history.json", `"nope"`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected an array of scores")
}

func TestForecastCommand_Text(t *testing.T) {
	out, err := execute(t, "", "forecast", "--scores", "0.2,0.3", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "14-DAY RISK FORECAST")
}

func TestAnalyzeCommand(t *testing.T) {
	out, err := execute(t, "", "analyze", "--text", "Exhausted and anxious, so far behind.", "--score")
	require.NoError(t, err)

	var resp types.AnalyzeResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "local", resp.Provider)
	require.NotNil(t, resp.SentimentScore)
	assert.Equal(t, -1.0, *resp.SentimentScore)
	require.NotNil(t, resp.Result)
	assert.Equal(t, []string{"sentiment"}, resp.Result.InputsUsed)
}

func TestAnalyzeCommand_Stdin(t *testing.T) {
	out, err := execute(t, "Calm, rested and focused.", "analyze", "--file", "-", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "JOURNAL METRICS")
	assert.Contains(t, out, "positive")
	assert.NotContains(t, out, "BURNOUT RISK")
}

func TestAnalyzeCommand_Errors(t *testing.T) {
	_, err := execute(t, "", "analyze", "--text", "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "journal text is empty")

	_, err = execute(t, "", "analyze")
	assert.Error(t, err)

	_, err = execute(t, "", "analyze", "--file", "/nonexistent/journal.txt")
	assert.Error(t, err)
}

func TestBatchCommand(t *testing.T) {
	input := writeFile(t, "cohort.csv", `id,sleep_hours,deadlines_next_7_days,work_hours,stress_self_report,sentiment_score
alice,4,6,40,9,-0.8
bob,8,0,15,2,0.6
carol,,,,,
`)

	out, err := execute(t, "", "batch", "--input", input, "--workers", "2")
	require.NoError(t, err)

	var doc batchOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 2, doc.Summary.Scored)
	assert.Equal(t, 1, doc.Summary.Failed)
	assert.Equal(t, 1, doc.Summary.HighRisk)
	require.Len(t, doc.Outcomes, 3)
	assert.Equal(t, "alice", doc.Outcomes[0].ID)
	assert.Equal(t, "carol", doc.Outcomes[2].ID)
	assert.NotEmpty(t, doc.Outcomes[2].Error)
}

func TestBatchCommand_Text(t *testing.T) {
	input := writeFile(t, "week.jsonl", "{\"sleep_hours\": 6}\n{\"stress_self_report\": 9}\n")

	out, err := execute(t, "", "batch", "--input", input, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "BATCH SUMMARY")
	assert.Contains(t, out, "Scored:    2")
}

func TestBatchCommand_Errors(t *testing.T) {
	_, err := execute(t, "", "batch")
	assert.Error(t, err)

	_, err = execute(t, "", "batch", "--input", writeFile(t, "bad.csv", "mood\nok\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown CSV column")

	_, err = execute(t, "", "batch", "--input", writeFile(t, "one.csv", "sleep_hours\n6\n"), "--workers", "-1")
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	cfgPath := writeFile(t, "config.json", `{"batch_workers": 3, "log_level": "warn"}`)
	input := writeFile(t, "one.csv", "sleep_hours\n6\n")

	_, err := execute(t, "", "--config", cfgPath, "batch", "--input", input)
	require.NoError(t, err)

	badPath := writeFile(t, "bad.json", `{"log_level": "loud"}`)
	_, err = execute(t, "", "--config", badPath, "batch", "--input", input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")

	_, err = execute(t, "", "--config", "/nonexistent/config.json", "batch", "--input", input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestServeCommand_RequiresDatabase(t *testing.T) {
	_, err := execute(t, "", "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
