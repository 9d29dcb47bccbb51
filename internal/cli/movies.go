package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/moviehub-app/moviehub/internal/models"
	"github.com/moviehub-app/moviehub/internal/tmdb"
)

var errNotLoggedIn = errors.New("sign in first")

// Search queries the metadata provider and records the search for the
// trending list. An empty query lists popular movies instead.
func (a *App) Search(ctx context.Context, query string) error {
	var res *tmdb.SearchResult
	var err error
	if query == "" {
		res, err = a.movies.Discover(ctx, 0, 1)
	} else {
		res, err = a.movies.Search(ctx, query, 1)
	}
	if err != nil {
		return err
	}
	if len(res.Results) == 0 {
		fmt.Println("no results")
		return nil
	}

	if query != "" {
		a.trending.UpdateSearchCount(ctx, query, res.Results[0])
	}

	for _, m := range res.Results {
		a.printMovie(m)
	}
	return nil
}

// Trending prints the most searched movies.
func (a *App) Trending(ctx context.Context) error {
	entries, err := a.trending.TrendingMovies(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("nothing trending yet")
		return nil
	}
	for i, e := range entries {
		fmt.Printf("%d. %s (%d searches)\n", i+1, e.SearchTerm, e.Count)
	}
	return nil
}

// Favorite adds a movie to the user's favorites by its id.
func (a *App) Favorite(ctx context.Context, args []string) error {
	user := a.auth.CurrentUser()
	if user == nil {
		return errNotLoggedIn
	}
	id, err := parseMovieID(args, "fav")
	if err != nil {
		return err
	}

	movie, err := a.movies.Movie(ctx, id)
	if err != nil {
		return err
	}

	if err := a.favorites.AddToFavorites(ctx, user.ID, *movie); err != nil {
		return err
	}
	fmt.Printf("Added %q to favorites\n", movie.Title)
	return nil
}

// Unfavorite removes a movie from the user's favorites by its id.
func (a *App) Unfavorite(ctx context.Context, args []string) error {
	user := a.auth.CurrentUser()
	if user == nil {
		return errNotLoggedIn
	}
	id, err := parseMovieID(args, "unfav")
	if err != nil {
		return err
	}

	if err := a.favorites.RemoveFromFavorites(ctx, user.ID, id); err != nil {
		return err
	}
	fmt.Println("Removed from favorites")
	return nil
}

// ListFavorites prints the user's favorites, newest first.
func (a *App) ListFavorites(ctx context.Context) error {
	user := a.auth.CurrentUser()
	if user == nil {
		return errNotLoggedIn
	}

	recs, err := a.favorites.LoadFavorites(ctx, user.ID)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("no favorites yet")
		return nil
	}
	for _, rec := range recs {
		fmt.Printf("%7d  %s (%s) ★%.1f\n", rec.MovieID, rec.Title, rec.ReleaseDate, rec.VoteAverage)
	}
	return nil
}

func (a *App) printMovie(m models.Movie) {
	fmt.Printf("%7d  %s (%s) ★%.1f\n", m.ID, m.Title, m.ReleaseDate, m.VoteAverage)
}

func parseMovieID(args []string, cmd string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: %s <movie-id>", cmd)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("movie id must be a number: %q", args[0])
	}
	return id, nil
}
