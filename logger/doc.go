// Package logger provides structured logging for the Billplz client using
// zerolog.
//
// Loggers are created explicitly and handed to the client or the transport;
// the package never touches zerolog's global level, so embedding the client
// in an application does not change how the application logs.
//
// # Configuration
//
//	billplz:
//	  logging:
//	    level: "debug"
//	    format: "json"
//
// # Usage
//
//	log := logger.New(&cfg, "billplz").WithComponent("transport")
//	log.Debug("request sent", logger.Fields("method", "POST", "status", 200))
package logger
