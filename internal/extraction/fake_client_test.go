package extraction

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/equilibria/burnout-risk/internal/llm"
)

// fakeClient returns a canned response for every prompt.
type fakeClient struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeClient) Extract(_ context.Context, schema llm.ExtractionSchema, input string, _ llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, llm.BuildExtractionPrompt(schema, input))
	return f.response, f.err
}

func (f *fakeClient) GetModel(_ llm.ModelTier) string { return "fake-model" }

func (f *fakeClient) Close() error { return nil }

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
