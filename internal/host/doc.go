// Package host is an in-process reference host for custom fields.
//
// It provides entity kinds (topic, group, category, post) whose records keep
// custom field values coerced to the registered field type, and view kinds
// (topic_view, topic_list_item, post, basic_category) that serialize the
// attributes declared on them. It implements the registry contracts, so a
// registration pass can target it directly. Real hosts plug in their own
// adapters behind the same interfaces.
package host
