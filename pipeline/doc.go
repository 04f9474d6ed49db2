// Package pipeline runs one audio file through the transcribe, summarize and
// optional synthesize stages, writing each stage's output to a timestamped
// file as soon as the stage succeeds.
//
// A run moves through Validated, Transcribed, Summarized, Synthesized and Done.
// Any failure stops the run in the Failed state; files written by earlier
// stages are kept.
//
// # Usage
//
//	p := pipeline.New(cfg, transcriber, summarizer, nil, log)
//	result, err := p.Run(ctx, "demo.wav")
package pipeline
