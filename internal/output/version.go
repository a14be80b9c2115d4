package output

// SchemaVersion is the current version of the NDJSON event schema.
// Increment this when making breaking changes to the event format.
const SchemaVersion = 1
