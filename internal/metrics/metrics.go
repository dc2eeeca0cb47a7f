package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Register attaches the Prometheus metrics endpoint to the router.
func Register(router *gin.Engine, path string) {
	router.GET(path, gin.WrapH(promhttp.Handler()))
}

var (
	// UsersRegistered counts successful account registrations.
	UsersRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bucketlist_users_registered_total",
		Help: "Number of user accounts created.",
	})

	// ListsCreated counts bucket lists created.
	ListsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bucketlist_lists_created_total",
		Help: "Number of bucket lists created.",
	})

	// ListsJoined counts successful share-code joins.
	ListsJoined = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bucketlist_lists_joined_total",
		Help: "Number of memberships created via share code.",
	})

	// ItemsCreated counts items added to lists, labeled by item type.
	ItemsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bucketlist_items_created_total",
		Help: "Number of list items created.",
	}, []string{"type"})

	// ShareCodeRetries counts share-code generation attempts that collided
	// with an existing list.
	ShareCodeRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bucketlist_share_code_retries_total",
		Help: "Number of share code generation retries due to collisions.",
	})
)
