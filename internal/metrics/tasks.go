package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameTaskOperations = "task_operations_total"
	LabelOperation     = "operation"

	OperationCreate   = "create"
	OperationUpdate   = "update"
	OperationComplete = "complete"
	OperationDelete   = "delete"
)

var TaskOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameTaskOperations,
		Help:      "Total task operations performed on behalf of users",
		Namespace: Namespace,
	},
	[]string{LabelOperation},
)
