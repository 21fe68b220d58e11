// Command suggest runs the route suggestion flow against the seeded static
// dataset and prints the result as JSON. Useful for eyeballing scoring and
// alternate generation without starting the server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/geo"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/routing"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/timeofday"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/traffic"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/services"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "routes":
		handleRoutes()
	case "bypasses":
		handleBypasses()
	case "time-status":
		handleTimeStatus()
	case "help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func handleRoutes() {
	fs := flag.NewFlagSet("routes", flag.ExitOnError)
	startLat := fs.Float64("start-lat", 37.7938, "start latitude")
	startLng := fs.Float64("start-lng", -122.3950, "start longitude")
	endLat := fs.Float64("end-lat", 37.7752, "end latitude")
	endLng := fs.Float64("end-lng", -122.4193, "end longitude")
	seed := fs.Int64("seed", 0, "estimator seed (0 seeds from the clock)")
	speed := fs.Float64("speed", routing.AverageCitySpeedKmh, "average speed in km/h for time estimates")
	fs.Parse(os.Args[2:])

	service := buildService(*seed, *speed)

	snapshot, err := store.NewStaticSource().Snapshot(context.Background())
	if err != nil {
		log.Fatalf("Error loading static snapshot: %v", err)
	}

	result, err := service.SuggestRoutes(context.Background(),
		geo.Point{Latitude: *startLat, Longitude: *startLng},
		geo.Point{Latitude: *endLat, Longitude: *endLng},
		snapshot)
	if err != nil {
		log.Fatalf("Error suggesting routes: %v", err)
	}

	printJSON(result)
}

func handleBypasses() {
	fs := flag.NewFlagSet("bypasses", flag.ExitOnError)
	lat := fs.Float64("lat", 37.7837, "congested point latitude")
	lng := fs.Float64("lng", -122.4089, "congested point longitude")
	seed := fs.Int64("seed", 0, "estimator seed (0 seeds from the clock)")
	fs.Parse(os.Args[2:])

	service := buildService(*seed, routing.AverageCitySpeedKmh)

	bypasses, err := service.Bypasses(context.Background(), geo.Point{Latitude: *lat, Longitude: *lng})
	if err != nil {
		log.Fatalf("Error generating bypasses: %v", err)
	}

	printJSON(bypasses)
}

func handleTimeStatus() {
	status, pref := buildService(0, routing.AverageCitySpeedKmh).TimeStatus()
	printJSON(map[string]interface{}{
		"status":     status,
		"preference": pref,
	})
}

func buildService(seed int64, speedKmh float64) *services.SuggestionService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return services.NewSuggestionService(
		traffic.NewCollector(geo.DefaultNearRouteThresholdKm),
		timeofday.NewEngine(),
		routing.NewMockRouteEstimator(seed),
		nil,
		nil,
		speedKmh,
		nil,
		0,
	)
}

func printJSON(v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("Error encoding output: %v", err)
	}
	fmt.Println(string(out))
}

func printUsage() {
	fmt.Println("Usage: suggest <command> [flags]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  routes       suggest routes between two points using the static dataset")
	fmt.Println("  bypasses     generate bypass routes around a congested point")
	fmt.Println("  time-status  show the current day/night routing preference")
	fmt.Println("  help         show this help")
}
