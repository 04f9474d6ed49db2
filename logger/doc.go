// Package logger provides structured logging for audiodigest using zerolog.
//
// It supports console and JSON output, level configuration, and
// component-scoped loggers carrying structured fields such as the job id.
//
//	log := logger.New(&cfg.Logging, "audiodigest").WithComponent("pipeline")
//	log.Info("Transcription in progress...", logger.Fields(logger.FieldJobID, job.ID))
package logger
