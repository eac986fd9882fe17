package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 积分账本与favor生命周期的计数器
var (
	FavorsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "favor_exchange_favors_published_total",
		Help: "Total number of favors published.",
	})

	FavorsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "favor_exchange_favors_accepted_total",
		Help: "Total number of favors accepted.",
	})

	FavorsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "favor_exchange_favors_completed_total",
		Help: "Total number of favors completed.",
	})

	FavorsSuspended = promauto.NewCounter(prometheus.CounterOpts{
		Name: "favor_exchange_favors_suspended_total",
		Help: "Total number of favors suspended because the owner ran out of credits.",
	})

	FavorsReactivated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "favor_exchange_favors_reactivated_total",
		Help: "Total number of suspended favors reactivated.",
	})

	CreditsSpent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "favor_exchange_credits_spent_total",
		Help: "Total credits spent publishing favors.",
	})

	CreditsEarned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "favor_exchange_credits_earned_total",
		Help: "Total credits awarded for completed favors.",
	})

	NotificationsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "favor_exchange_notifications_total",
		Help: "Total notifications emitted, by type.",
	}, []string{"type"})
)
