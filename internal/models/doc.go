// Package models lists the chat models an OpenAI key can use as the
// translation provider, so users can pick a value for
// translation.openai_model.
package models
