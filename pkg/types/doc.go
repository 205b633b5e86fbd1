// Package types contains the shared data types of dotlink: mappings,
// link statuses, planned actions, execution reports and the filesystem
// capability interface all other packages are written against.
package types
