// Package models defines domain entities and persistence interfaces for the lrcsync tool.
//
// [SessionRecord] is the one persistent entity: a row written whenever a
// sync session is exported, so past work is browsable from the CLI. It
// implements the [Model] interface providing ID generation, timestamps,
// validation, and soft delete support. The [Repository] interface defines
// standard CRUD operations for database access.
package models
