// Package docdex embeds the documentation search engine in a Go program.
//
// A Client holds one write-once index snapshot. Load it from a docs site,
// a directory or an index file, then run queries against it:
//
//	client, _ := docdex.New(ctx)
//	defer client.Close()
//	_ = client.Load(ctx, "https://crystal-lang.org/api/1.14.0/")
//	res, _ := client.Search(ctx, "Array#each")
//	for _, r := range res.Items {
//	    fmt.Println(r.FullName, r.Href)
//	}
//
// Ranked pages are cached in-process. With WithRedis or WithValkey the
// cache gets a shared second layer, so several processes serving the same
// index reuse each other's results.
package docdex
