package api

import (
	_ "embed"
	"net/http"

	"golang.org/x/net/html"

	"github.com/dgallion1/minitut/internal/deck"
	"github.com/dgallion1/minitut/internal/dom"
)

// RemoteScriptPath is where the browser glue is served.
const RemoteScriptPath = "/remote.js"

//go:embed remote.js
var remoteJS []byte

func (s *Server) handleRemoteScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(remoteJS)
}

// RemoteScript is a plugin that links the browser glue into the content so
// a served deck forwards its input to the presenter. It adds the script at
// most once per document.
func RemoteScript() deck.Plugin {
	return deck.PluginFunc(func(root *html.Node) {
		top := root
		for top.Parent != nil {
			top = top.Parent
		}
		if dom.Query(top, `script[src="`+RemoteScriptPath+`"]`) != nil {
			return
		}
		root.AppendChild(dom.Element("script", "src", RemoteScriptPath, "defer", ""))
	})
}
