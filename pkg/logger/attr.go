package logger

import "log/slog"

// Error records err under the key "error". A nil error yields an empty Attr,
// which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the emitting component under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// RequestID records the request identifier under the key "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Field records a catalog field name.
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Reason records a rejection reason code such as "too_short".
func Reason[T ~string](reason T) slog.Attr {
	if reason == "" {
		return slog.Attr{}
	}
	return slog.String("reason", string(reason))
}

// CatalogVersion records the rule catalog version in effect.
func CatalogVersion(v string) slog.Attr {
	return slog.String("catalog_version", v)
}

// Rejected groups the fields of a rejected record under "rejected" as
// field=reason pairs, in report order.
func Rejected(pairs ...[2]string) slog.Attr {
	if len(pairs) == 0 {
		return slog.Attr{}
	}
	as := make([]slog.Attr, 0, len(pairs))
	for _, p := range pairs {
		as = append(as, slog.String(p[0], p[1]))
	}
	return slog.Attr{Key: "rejected", Value: slog.GroupValue(as...)}
}
