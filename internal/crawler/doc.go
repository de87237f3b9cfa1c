// Package crawler downloads the certified radio equipment spreadsheets
// published by the Ministry of Internal Affairs and Communications.
//
// # Components
//
//   - Fetcher: retrieves an HTML page and decodes it to UTF-8
//   - Page: extracts the advertised year and the category tables
//   - Table and Link: yield the spreadsheet links of one category
//   - Downloader: streams a spreadsheet to disk
//   - Crawler: walks the list page and applies the skip rules
//
// # Usage
//
//	c := crawler.NewCrawler(http.DefaultClient, "downloads",
//	    crawler.WithLogger(logger))
//	results := c.Crawl(ctx, config.DefaultIndexURL, crawler.Options{})
//
// # Document order
//
// Category headings and association paragraphs are not ancestors of the
// elements they label. Page flattens the document into a depth-first node
// list once and answers "nearest preceding h2/h3/p" questions by scanning
// that list backwards.
package crawler
