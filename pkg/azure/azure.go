// Package azure builds go-openai clients that talk to Azure OpenAI deployments.
package azure

import (
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Options describes how to reach an Azure OpenAI resource.
type Options struct {
	Endpoint   string
	APIKey     string
	APIVersion string
	Timeout    time.Duration // zero means no client-side timeout
	HTTPClient *http.Client  // overrides Timeout when set
}

// NewClient creates an OpenAI client in Azure mode. Model names in requests are
// used verbatim as deployment names.
func NewClient(opts Options) *openai.Client {
	cfg := openai.DefaultAzureConfig(opts.APIKey, strings.TrimSuffix(opts.Endpoint, "/"))
	if opts.APIVersion != "" {
		cfg.APIVersion = opts.APIVersion
	}
	// The default mapper strips '.' and ':' which breaks deployment names that contain them.
	cfg.AzureModelMapperFunc = func(model string) string { return model }

	if opts.HTTPClient != nil {
		cfg.HTTPClient = opts.HTTPClient
	} else {
		cfg.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	return openai.NewClientWithConfig(cfg)
}
