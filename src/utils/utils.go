package utils

import (
	"fmt"
	"reflect"
	"strings"
)

// TagProperties splits a tag such as "name=id, type=INT32" into its key/value
// pairs. Entries without "=" map to an empty value.
func TagProperties(tag string) map[string]string {
	result := make(map[string]string)
	for _, entry := range strings.Split(tag, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		key, value, _ := strings.Cut(entry, "=")
		result[key] = value
	}
	return result
}

// ColumnNames returns the "name" property of tagKey for every exported field of
// the struct t, falling back to the Go field name.
func ColumnNames(t any, tagKey string) []string {
	typeOf := reflect.TypeOf(t)
	var result []string
	for _, field := range reflect.VisibleFields(typeOf) {
		if !field.IsExported() {
			continue
		}
		name := TagProperties(field.Tag.Get(tagKey))["name"]
		if name == "" {
			name = field.Name
		}
		result = append(result, name)
	}
	return result
}

// FieldValues formats every exported field of the struct t in declaration order.
func FieldValues(t any) []string {
	value := reflect.ValueOf(t)
	var result []string
	for _, field := range reflect.VisibleFields(value.Type()) {
		if !field.IsExported() {
			continue
		}
		result = append(result, fmt.Sprint(value.FieldByIndex(field.Index).Interface()))
	}
	return result
}
