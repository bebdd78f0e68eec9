package handlers

import (
	"html/template"
	"net/http"
)

func (controller *Controller) IndexHandler(w http.ResponseWriter, r *http.Request) {
	tmpl, err := template.New("index.html").Funcs(template.FuncMap{
		"metricName": FormatMetricName,
	}).ParseFiles("templates/index.html")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := struct {
		Symbols []string
		Metrics []string
	}{
		Symbols: controller.symbols,
		Metrics: Metrics,
	}

	w.Header().Set("Content-Type", "text/html")
	tmpl.Execute(w, data)
}
