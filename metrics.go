package s3tools

import (
	prom "github.com/prometheus/client_golang/prometheus"
)

const (
	methodDownload   = "download"
	methodUpload     = "upload"
	methodList       = "list"
	methodDelete     = "delete"
	methodAttributes = "attributes"
)

func newRequestsCounter() *prom.CounterVec {
	return prom.NewCounterVec(prom.CounterOpts{
		Name: "s3tools_requests_total",
		Help: "Number of object storage requests",
	}, []string{"method"})
}
