// Package hoodmatch is an in-process Go client for neighborhood matching.
//
// It ranks a fixed set of neighborhoods by how well their ratings fit a
// user's weighted preferences, without running the HTTP service.
//
//	client, _ := hoodmatch.New(ctx)
//	ranked, _ := client.Match(ctx, hoodmatch.Preferences{
//	    Safety:         10,
//	    Affordability:  3,
//	    Walkability:    5,
//	    SchoolQuality:  8,
//	    ParksTransport: 4,
//	}, 3)
//
// Free-text discovery needs an embedding provider:
//
//	client, _ := hoodmatch.New(ctx,
//	    hoodmatch.WithEmbedder(myEmbedder),
//	    hoodmatch.WithRedis("localhost:6379", ""), // optional embedding cache
//	)
//	hits, _ := client.Search(ctx, "quiet, family friendly, near good schools", 5)
package hoodmatch
