// Package translation provides the reference translation lookups used to
// grade quiz answers. The default collaborator is Google's public
// translate_a/single endpoint; OpenAI and Gemini chat models can be used
// instead. Lookups can be wrapped in a circuit breaker and an in-memory
// cache.
package translation
