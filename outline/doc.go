// Package outline turns a document's span sequence into its outline.
//
// The pipeline inside this package runs in four stages:
//
//   - BuildBlocks merges adjacent same-styled spans into candidate blocks
//   - RepeatDetector removes page furniture repeated across pages
//   - Scorer assigns each block a confidence in [0,1] and a heading tier
//   - Builder selects the title, filters and de-duplicates, and emits the
//     final Result in document order
//
// All stages are pure functions of their input; running the same spans twice
// yields byte-identical marshaled output.
package outline
