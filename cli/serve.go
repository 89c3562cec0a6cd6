package cli

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"

	"github.com/clafollett/agenterra-go/internal/templates"
)

// docServer serves a browsable index of the bundled templates: one
// page per (protocol, role, language) triple rendering its manifest
// description and README.md as HTML via goldmark, adapted from the
// teacher's cmd/openapi/main.go serveDocumentation.
type docServer struct {
	repo templates.Repository
}

func (c *CLI) newServeCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a browsable index of the bundled templates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port == 0 {
				port = c.cfg.Server.Port
			}

			srv := docServer{repo: templates.NewBundledRepository()}
			router := srv.router()

			addr := fmt.Sprintf("%s:%d", c.cfg.Server.Host, port)
			c.printSuccess("serving template documentation at http://%s/", addr)

			httpServer := &http.Server{
				Addr:         addr,
				Handler:      router,
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 10 * time.Second,
			}
			return httpServer.ListenAndServe()
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "port to listen on (defaults to the configured server port)")
	return cmd
}

func (s docServer) router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/", s.handleIndex)
	router.HandleFunc("/bundles/{protocol}/{role}/{language}", s.handleBundle)
	return router
}

func (s docServer) handleIndex(w http.ResponseWriter, _ *http.Request) {
	list, err := s.repo.ListTemplates()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var body strings.Builder
	body.WriteString("<html><head><title>agenterra templates</title></head><body>")
	body.WriteString("<h1>Available templates</h1><ul>")
	for _, md := range list {
		fmt.Fprintf(&body, `<li><a href="/bundles/%s">%s</a> &mdash; %s</li>`, md.Path, md.Name, md.Description)
	}
	body.WriteString("</ul></body></html>")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(body.String()))
}

func (s docServer) handleBundle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bundlePath := fmt.Sprintf("%s/%s/%s", vars["protocol"], vars["role"], vars["language"])

	md, err := s.repo.GetTemplate(bundlePath)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	files, err := s.repo.GetTemplateFiles(bundlePath)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var readmeHTML bytes.Buffer
	for _, f := range files {
		if strings.EqualFold(f.RelativePath, "README.md.tmpl") || strings.EqualFold(f.RelativePath, "README.md") {
			if err := goldmark.Convert(f.Contents, &readmeHTML); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			break
		}
	}

	fmt.Fprintf(w, "<html><head><title>%s</title></head><body><h1>%s</h1><p>%s</p>%s</body></html>",
		md.Name, md.Name, md.Description, readmeHTML.String())
}
