// Package providers defines the upstream model contract and the HTTP
// transport shared by every provider adapter.
//
// # Provider Contract
//
// A Provider turns a system prompt and a user prompt into reply text:
//
//	resp, err := provider.Complete(ctx, &providers.CompletionRequest{
//	    APIKey:       key,
//	    SystemPrompt: system,
//	    UserPrompt:   user,
//	})
//
// Adapters live in subpackages (openai, ollama) and build on HTTPProvider.
//
// # Errors
//
// Every upstream failure is an *UpstreamError with a Kind:
//
//   - KindUnauthorized: upstream 401 or 403
//   - KindThrottled: upstream 429
//   - KindTimeout: the per-call deadline expired
//   - KindServerError: upstream 5xx
//   - KindRequestFailed: the request never produced a response, including a caller cancel
//   - KindEmptyResponse: a 2xx whose body held no usable text
//   - KindUpstreamStatus: any other non-2xx
//
// HTTPStatus maps a kind to the status returned to the browser, and
// FallbackEligible reports whether a templated reply may replace the model
// reply. There are no retries.
//
// # Observability
//
// Each call runs inside a span named upstream.<provider>.<operation> with
// W3C trace context injected into the outbound request, and is counted in the
// upstream metrics when a collector is attached.
package providers
