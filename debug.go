package main

import (
	"log"
	"os"
)

var debugEnabled = os.Getenv("PICVIEW_DEBUG") != ""

// debugLog prints diagnostic output when PICVIEW_DEBUG is set
func debugLog(format string, args ...any) {
	if debugEnabled {
		log.Printf("Debug: "+format, args...)
	}
}
