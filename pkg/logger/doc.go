// Package logger provides a context-aware wrapper around Go's slog package
// adding functional options for configuration, helper attribute constructors,
// and transparent injection of values stored in context.Context.
//
// The package exposes a single factory – New – that creates a *slog.Logger
// configured by a set of Option functions. These options allow you to:
//
//   • Select an output format (text or json)
//   • Set the minimum log level
//   • Supply default slog.Attr values applied to every record
//   • Register ContextExtractor callbacks that inject attributes pulled from a
//     context value every time Handle is invoked.
//
// # Architecture
//
// New determines the concrete slog.Handler implementation –
// slog.NewTextHandler or slog.NewJSONHandler – based on the configured
// Format, then wraps it with ContextHandler which executes any
// registered ContextExtractor callbacks before delegating to the underlying
// handler. The default writes text to stderr so stdout stays reserved for
// generated credentials.
//
// Helper constructors such as Group, Error, Template, and Sink live in
// attr.go and return commonly-used slog.Attr instances to keep attribute
// naming consistent across the codebase. None of them ever carry secret
// material, only identifiers.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
//	    logger.WithFormat(logger.ParseFormat(cfg.LogFormat)),
//	)
//	logger.SetAsDefault(log)
//
//	log.Info("stored secret",
//	    logger.Sink("aws-secrets-manager"),
//	    logger.SecretName("prod/db/password"),
//	)
//
// # Error Handling
//
// Helper functions Error and Errors produce attributes only when the supplied
// error value is non-nil allowing calls like:
//
//	log.Info("operation finished", logger.Error(err))
//
// without an additional nil check.
package logger
