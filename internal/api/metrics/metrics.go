// Package metrics defines and registers all custom Prometheus metrics for the
// content service. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "newsphere"

// ── Moderation metrics ────────────────────────────────────────────────────────

// ArticlesSubmittedTotal counts articles entering the moderation queue.
// Label:
//   - premium: "true" or "false"
var ArticlesSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "articles_submitted_total",
		Help:      "Total number of articles submitted for review.",
	},
	[]string{"premium"},
)

// ModerationDecisionsTotal counts terminal moderation decisions.
// Label:
//   - decision: "approved" or "declined"
var ModerationDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "moderation_decisions_total",
		Help:      "Total number of moderation decisions, by outcome.",
	},
	[]string{"decision"},
)

// ArticleViewsTotal counts recorded article views.
var ArticleViewsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "article_views_total",
		Help:      "Total number of article views recorded.",
	},
)

// ── Subscription metrics ──────────────────────────────────────────────────────

// SubscriptionsActivatedTotal counts premium activations.
// Label:
//   - plan: the activated plan identifier (e.g. "5d")
var SubscriptionsActivatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "subscriptions_activated_total",
		Help:      "Total number of premium subscriptions activated, by plan.",
	},
	[]string{"plan"},
)

// ── Cache metrics ─────────────────────────────────────────────────────────────

// TrendingCacheTotal counts trending cache lookups.
// Label:
//   - result: "hit" or "miss"
var TrendingCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "trending_cache_total",
		Help:      "Total number of trending cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
