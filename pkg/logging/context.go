package logging

import (
	"context"
)

const (
	TraceIDKey        = "trace_id"
	EmailIDKey        = "email_id"
	NamespaceKey      = "namespace"
	MunicipalityIDKey = "municipality_id"
	ServiceNameKey    = "service_name"
)

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

func WithEmailID(ctx context.Context, emailID string) context.Context {
	return context.WithValue(ctx, EmailIDKey, emailID)
}

func WithTenant(ctx context.Context, namespace, municipalityID string) context.Context {
	ctx = context.WithValue(ctx, NamespaceKey, namespace)
	return context.WithValue(ctx, MunicipalityIDKey, municipalityID)
}

func WithServiceName(ctx context.Context, serviceName string) context.Context {
	return context.WithValue(ctx, ServiceNameKey, serviceName)
}

func GetTraceID(ctx context.Context) string {
	if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
		return traceID
	}
	return ""
}

func GetEmailID(ctx context.Context) string {
	if emailID, ok := ctx.Value(EmailIDKey).(string); ok {
		return emailID
	}
	return ""
}

func GetNamespace(ctx context.Context) string {
	if namespace, ok := ctx.Value(NamespaceKey).(string); ok {
		return namespace
	}
	return ""
}

func GetMunicipalityID(ctx context.Context) string {
	if municipalityID, ok := ctx.Value(MunicipalityIDKey).(string); ok {
		return municipalityID
	}
	return ""
}

func GetServiceName(ctx context.Context) string {
	if serviceName, ok := ctx.Value(ServiceNameKey).(string); ok {
		return serviceName
	}
	return ""
}

func GetLogFields(ctx context.Context) []interface{} {
	fields := make([]interface{}, 0, 10)

	if traceID := GetTraceID(ctx); traceID != "" {
		fields = append(fields, "trace_id", traceID)
	}

	if emailID := GetEmailID(ctx); emailID != "" {
		fields = append(fields, "email_id", emailID)
	}

	if namespace := GetNamespace(ctx); namespace != "" {
		fields = append(fields, "namespace", namespace)
	}

	if municipalityID := GetMunicipalityID(ctx); municipalityID != "" {
		fields = append(fields, "municipality_id", municipalityID)
	}

	if serviceName := GetServiceName(ctx); serviceName != "" {
		fields = append(fields, "service_name", serviceName)
	}

	return fields
}
