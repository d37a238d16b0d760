// Package fallback generates templated coaching replies without calling a
// model.
//
// Replies are served when no provider can answer: no usable API key, the
// preferred local provider is disabled, or the upstream call failed with a
// transient condition. Generation is deterministic and does no I/O, so the
// same input and reason always produce the same text.
//
// Each mode follows the same section layout the model is asked to return.
// Check-ins are shaped by the stress band, journals by the emotion
// categories found in the entry, and coach replies by the message topic.
package fallback
