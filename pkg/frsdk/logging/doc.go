// Package logging provides a minimal logging facade for the frsdk wrapper.
//
// The Logger interface wraps a context-aware subset of log/slog so that
// applications can plug in their own implementation:
//
//	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: logging.ParseLevel(os.Getenv("FRSDK_LOG_LEVEL")),
//	})
//	lib, err := frsdk.Open(frsdk.Config{Logger: logging.New(slog.New(handler))})
//
// # Redaction
//
// Image buffers handed to the native library never appear in log records.
// Use Redacted to keep the attribute key while dropping the value:
//
//	logger.Warn(ctx, "FR_AddFace failed", logging.Redacted("image"), "image_bytes", len(img))
//	// image="[redacted]" image_bytes=48213
package logging
