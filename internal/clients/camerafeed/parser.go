// Package camerafeed ingests traffic camera placemarks from a KML feed.
// Each placemark carries the camera name, its position, and a description
// blob with the latest vehicle count, which is classified into a congestion
// level before the camera joins the snapshot.
package camerafeed

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/geo"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/traffic"
)

// HTTPDoer abstracts the HTTP client so tests can inject canned responses.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client downloads and parses a camera KML feed.
type Client struct {
	feedURL    string
	httpClient HTTPDoer
}

// NewClient creates a feed client with a standard HTTP client.
func NewClient(feedURL string) *Client {
	return NewClientWithHTTPDoer(feedURL, &http.Client{
		Timeout: 30 * time.Second,
	})
}

// NewClientWithHTTPDoer creates a feed client with an injected HTTP doer.
func NewClientWithHTTPDoer(feedURL string, doer HTTPDoer) *Client {
	return &Client{
		feedURL:    feedURL,
		httpClient: doer,
	}
}

// FetchCameras downloads the feed and returns every camera placemark with
// valid coordinates. Placemarks without a Point geometry are skipped.
func (c *Client) FetchCameras(ctx context.Context) ([]traffic.CameraObservation, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download KML: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error %d downloading KML from %s", resp.StatusCode, c.feedURL)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read KML response: %w", err)
	}

	return ParseFeed(data)
}

// FetchCamerasNear downloads the feed and keeps only cameras within
// radiusKm of center.
func (c *Client) FetchCamerasNear(ctx context.Context, center geo.Point, radiusKm float64) ([]traffic.CameraObservation, error) {
	cameras, err := c.FetchCameras(ctx)
	if err != nil {
		return nil, err
	}

	var nearby []traffic.CameraObservation
	for _, camera := range cameras {
		if geo.DistanceKm(center, camera.Position) <= radiusKm {
			nearby = append(nearby, camera)
		}
	}
	return nearby, nil
}

// ParseFeed parses raw KML into camera observations. Placemarks may sit
// directly under the Document or inside one level of Folders.
func ParseFeed(data []byte) ([]traffic.CameraObservation, error) {
	var doc kmlFile
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse KML: %w", err)
	}

	placemarks := doc.Document.Placemarks
	for _, folder := range doc.Document.Folders {
		placemarks = append(placemarks, folder.Placemarks...)
	}
	// Some feeds omit the Document wrapper entirely.
	placemarks = append(placemarks, doc.Placemarks...)

	var cameras []traffic.CameraObservation
	for _, placemark := range placemarks {
		if camera := processPlacemark(placemark); camera != nil {
			cameras = append(cameras, *camera)
		}
	}
	return cameras, nil
}

// processPlacemark converts a KML placemark to a camera observation,
// or nil when the placemark has no usable Point coordinates.
func processPlacemark(placemark kmlPlacemark) *traffic.CameraObservation {
	if placemark.Point == nil {
		return nil
	}
	position, ok := parseCoordinates(placemark.Point.Coordinates)
	if !ok {
		return nil
	}

	description := extractTextFromHTML(placemark.Description)
	vehicleCount := extractVehicleCount(description)
	level, avgSpeed := traffic.ClassifyCongestion(vehicleCount)

	id := extractCameraID(description)
	if id == "" {
		id = slugify(placemark.Name)
	}

	return &traffic.CameraObservation{
		ID:              id,
		Name:            strings.TrimSpace(placemark.Name),
		Position:        position,
		CongestionLevel: level,
		VehicleCount:    vehicleCount,
		AverageSpeedKmh: avgSpeed,
	}
}

// parseCoordinates parses a KML coordinate tuple. KML order is
// "longitude,latitude[,altitude]".
func parseCoordinates(raw string) (geo.Point, bool) {
	fields := strings.Split(strings.TrimSpace(raw), ",")
	if len(fields) < 2 {
		return geo.Point{}, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return geo.Point{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return geo.Point{}, false
	}
	point := geo.Point{Latitude: lat, Longitude: lng}
	return point, point.Valid()
}

var (
	htmlTagPattern      = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern   = regexp.MustCompile(`\s+`)
	vehicleCountPattern = regexp.MustCompile(`(?i)vehicles?\s*:?\s*(\d+)`)
	cameraIDPattern     = regexp.MustCompile(`(?i)\bid\s*:?\s*([A-Za-z0-9_-]+)`)
	slugPattern         = regexp.MustCompile(`[^a-z0-9]+`)
)

// extractTextFromHTML strips HTML tags and decodes entities from a
// placemark description CDATA blob.
func extractTextFromHTML(htmlContent string) string {
	text := htmlTagPattern.ReplaceAllString(htmlContent, " ")
	text = html.UnescapeString(text)
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// extractVehicleCount reads the latest vehicle count from a description.
// Missing or malformed counts read as zero, which classifies as free flow.
func extractVehicleCount(text string) int {
	match := vehicleCountPattern.FindStringSubmatch(text)
	if match == nil {
		return 0
	}
	count, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return count
}

// extractCameraID reads an explicit camera ID from a description.
func extractCameraID(text string) string {
	match := cameraIDPattern.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return match[1]
}

func slugify(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// kmlFile mirrors the subset of KML the feed uses.
type kmlFile struct {
	XMLName  xml.Name `xml:"kml"`
	Document struct {
		Folders    []kmlFolder    `xml:"Folder"`
		Placemarks []kmlPlacemark `xml:"Placemark"`
	} `xml:"Document"`
	Placemarks []kmlPlacemark `xml:"Placemark"`
}

type kmlFolder struct {
	Placemarks []kmlPlacemark `xml:"Placemark"`
}

type kmlPlacemark struct {
	Name        string    `xml:"name"`
	Description string    `xml:"description"`
	Point       *kmlPoint `xml:"Point"`
}

type kmlPoint struct {
	Coordinates string `xml:"coordinates"`
}
