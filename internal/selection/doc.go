// Package selection implements "select the first N rows" across remote pages.
//
// The engine starts from the page currently on screen, reusing its records, and then
// walks forward one page at a time until N records are collected, a short page shows
// the dataset is exhausted, or a fetch fails. Key properties:
//   - Strictly sequential fetches in increasing page order
//   - A failed fetch ends the walk and keeps everything collected before it
//   - The reported dataset total is never used to stop the walk
//   - Each published Result replaces the previous one in full
//   - Only one walk runs at a time; overlapping calls are rejected
//
// The engine reads pagination state through a one-time snapshot and never writes it.
package selection
