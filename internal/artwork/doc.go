// Package artwork provides the artwork record model and the page fetcher boundary.
//
// A Fetcher retrieves one page of artwork records together with the total record
// count reported by the data source. Key features:
//   - Fetcher interface with a FetcherFunc adapter for tests and wrappers
//   - HTTP Client for the Art Institute of Chicago public API
//   - TransportError for network, status and decode failures
//   - API version compatibility check using semver constraints
//
// A page shorter than the requested page size means the dataset is exhausted
// beyond that page. Callers rely on this signal rather than on the reported total.
package artwork
