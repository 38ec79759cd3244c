// Package model defines the document representation shared by every
// pipeline stage: pages, blocks, tables, bounding boxes, QA findings and
// the QA report. The JSON field names form the serialization contract
// consumed by downstream exporters and regression fixtures, so they are
// fixed (snake_case) and must not change.
//
// Coordinates are top-left origin: y grows downward, so y0 is the top
// edge of a box and y1 its bottom edge. This matches the extraction
// artifacts the pipeline ingests.
package model
