package pipeline

// State is the position of a run in the stage lifecycle.
type State string

const (
	StateValidated   State = "validated"
	StateTranscribed State = "transcribed"
	StateSummarized  State = "summarized"
	StateSynthesized State = "synthesized"
	StateDone        State = "done"
	StateFailed      State = "failed"
)

// Stage names used in logs, spans and metrics.
const (
	StageTranscribe = "transcribe"
	StageSummarize  = "summarize"
	StageSynthesize = "synthesize"
)

// Output suffixes.
const (
	SuffixTranscription = "transcription"
	SuffixSummary       = "summary"
)

// Result describes what a run produced. Paths are empty for stages that did
// not write.
type Result struct {
	Job               Job
	State             State
	TranscriptionPath string
	SummaryPath       string
	AudioPath         string
}
