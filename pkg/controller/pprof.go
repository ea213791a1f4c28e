package controller

import (
	"net/http"
	"net/http/pprof"
)

// PprofPath is the path prefix PprofMux serves under.
const PprofPath = "/debug/pprof/"

// PprofMux returns a ServeMux exposing the net/http/pprof handlers under
// PprofPath. Named profiles (heap, goroutine, ...) are served by the index.
func PprofMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc(PprofPath, pprof.Index)
	mux.HandleFunc(PprofPath+"cmdline", pprof.Cmdline)
	mux.HandleFunc(PprofPath+"profile", pprof.Profile)
	mux.HandleFunc(PprofPath+"symbol", pprof.Symbol)
	mux.HandleFunc(PprofPath+"trace", pprof.Trace)

	return mux
}
