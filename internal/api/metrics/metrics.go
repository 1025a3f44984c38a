// Package metrics defines and registers all custom Prometheus metrics for the
// HR platform. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hr"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// OTPIssuedTotal counts one-time codes issued.
// Label:
//   - purpose: "verification", "login", or "reset"
var OTPIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_issued_total",
		Help:      "Total number of one-time codes issued, by purpose.",
	},
	[]string{"purpose"},
)

// OTPVerifiedTotal counts verification attempts.
// Label:
//   - result: "success" or "failure"
var OTPVerifiedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_verified_total",
		Help:      "Total number of OTP verification attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts across all issuance paths.
// Label:
//   - result: "success", "failure" (bad credentials), or "blocked" (status gate)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts account registrations.
// Labels:
//   - role: the registered role ("Employee" or "User")
//   - kind: "created" (new account) or "reactivated" (rejected account overwritten)
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of account registrations, by role and kind.",
	},
	[]string{"role", "kind"},
)

// ApprovalsTotal counts admin approval decisions.
// Label:
//   - decision: "approved" or "rejected"
var ApprovalsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "approvals_total",
		Help:      "Total number of admin approval decisions.",
	},
	[]string{"decision"},
)

// ── Attendance metrics ────────────────────────────────────────────────────────

// ClockEventsTotal counts attendance clock events.
// Labels:
//   - direction: "in" or "out"
//   - status: the record status at the time of the event ("Present", "Late", ...)
var ClockEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clock_events_total",
		Help:      "Total number of attendance clock events, by direction and status.",
	},
	[]string{"direction", "status"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsTotal counts outbound notification deliveries.
// Labels:
//   - channel: "email" or "push"
//   - result: "ok", "error", or for push "no_session"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of outbound notification deliveries, by channel and result.",
	},
	[]string{"channel", "result"},
)

// NotificationQueueDepth tracks the number of notifications waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index ("0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// NotificationDeliveryDuration measures end-to-end delivery time per template.
// Label:
//   - template: the notification template name
var NotificationDeliveryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_delivery_duration_seconds",
		Help:      "Duration of notification delivery from dequeue to completion.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"template"},
)
