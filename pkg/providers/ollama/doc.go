// Package ollama adapts a local Ollama server to the providers.Provider
// contract. Requests go to POST /api/chat with streaming disabled; the reply
// is message.content.
package ollama
