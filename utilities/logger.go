package utilities

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	infoLog  *log.Logger
	warnLog  *log.Logger
	errorLog *log.Logger
	debugLog *log.Logger
	logMutex sync.Mutex
)

// SetupLogging wires the leveled loggers to stdout/stderr plus a rotating
// file per level under logDir.
func SetupLogging(logDir string) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Fatalf("failed to create log directory: %v", err)
	}

	infoWriter := io.MultiWriter(os.Stdout, rotatingFile(filepath.Join(logDir, "info.log")))
	warnWriter := io.MultiWriter(os.Stdout, rotatingFile(filepath.Join(logDir, "warn.log")))
	errorWriter := io.MultiWriter(os.Stderr, rotatingFile(filepath.Join(logDir, "error.log")))

	infoLog = log.New(infoWriter, "INFO: ", log.Ldate|log.Ltime)
	warnLog = log.New(warnWriter, "WARNING: ", log.Ldate|log.Ltime)
	errorLog = log.New(errorWriter, "ERROR: ", log.Ldate|log.Ltime)
	debugLog = log.New(infoWriter, "DEBUG: ", log.Ldate|log.Ltime)

	// Override Go's default log output as well.
	log.SetOutput(infoWriter)
}

func rotatingFile(path string) io.Writer {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    25, // MB
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}
}

func getCallerInfo() string {
	pc, _, _, ok := runtime.Caller(3)
	if !ok {
		return "unknown"
	}
	return runtime.FuncForPC(pc).Name()
}

func logf(target *log.Logger, format string, v ...interface{}) {
	logMutex.Lock()
	defer logMutex.Unlock()

	if target == nil {
		log.Printf("[%s] %s", getCallerInfo(), fmt.Sprintf(format, v...))
		return
	}
	target.Printf("[%s] %s", getCallerInfo(), fmt.Sprintf(format, v...))
}

func Info(format string, v ...interface{}) {
	logf(infoLog, format, v...)
}

func Warn(format string, v ...interface{}) {
	logf(warnLog, format, v...)
}

func Error(format string, v ...interface{}) {
	logf(errorLog, format, v...)
}

func Debug(format string, v ...interface{}) {
	logf(debugLog, format, v...)
}
