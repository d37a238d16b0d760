// Package openai adapts the OpenAI Responses API to the providers.Provider
// contract and verifies user-supplied API keys.
//
// # Usage
//
//	transport := providers.NewHTTPProvider(openai.ProviderName)
//	client := openai.New(cfg.Upstream.OpenAI, transport)
//	resp, err := client.Complete(ctx, &providers.CompletionRequest{
//	    APIKey:       key,
//	    SystemPrompt: system,
//	    UserPrompt:   user,
//	})
//
// A Client is cheap to build, so callers create one per request from the
// current configuration while sharing a single transport.
//
// # Keys
//
// IsLikelyKey checks the shape of a key without calling the API: after
// trimming it starts with "sk-", has no whitespace, and is 20 to 260
// characters long. ResolveAPIKey prefers a well-formed user key over the
// server key and never returns a malformed one.
package openai
