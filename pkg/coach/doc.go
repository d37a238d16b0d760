// Package coach turns a raw chat payload into a validated coaching request
// and builds the prompts sent to the language model.
//
// # Modes
//
// Three interaction modes are supported: coach (free conversation with
// recent history), checkin (mood, stress, and a short note), and journal
// (a longer free-form entry). Unknown modes are treated as coach.
//
// # Normalization
//
// Normalize sanitizes every user-supplied string: control characters become
// spaces, whitespace runs collapse to one space, and the result is trimmed
// and truncated to a per-field character limit. The source text used for
// validation and crisis detection is the first non-empty string among the
// message, entry, and note fields.
//
// # Crisis detection
//
// HasCrisisSignal matches self-harm and suicide phrases in Korean and
// English. Callers check it before any key or provider logic and answer
// with CrisisReply instead of calling the model.
package coach
