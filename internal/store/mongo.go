package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/geo"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/traffic"
)

const (
	camerasCollection    = "cameras"
	detectionsCollection = "detections"
	analyticsCollection  = "analytics"
)

// MongoSource reads snapshots from the collections the camera analytics
// pipeline writes to.
type MongoSource struct {
	client   *mongo.Client
	database string
}

// NewMongoSource connects to MongoDB and verifies the connection with a
// ping before returning.
func NewMongoSource(ctx context.Context, uri, database string, connectTimeout time.Duration) (*MongoSource, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoSource{client: client, database: database}, nil
}

// Close disconnects the underlying client.
func (s *MongoSource) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Snapshot loads the current cameras, detections, and analytics records.
func (s *MongoSource) Snapshot(ctx context.Context) (traffic.Snapshot, error) {
	db := s.client.Database(s.database)

	var cameraDocs []cameraDoc
	if err := findAll(ctx, db.Collection(camerasCollection), &cameraDocs); err != nil {
		return traffic.Snapshot{}, fmt.Errorf("failed to load cameras: %w", err)
	}

	var detectionDocs []detectionDoc
	if err := findAll(ctx, db.Collection(detectionsCollection), &detectionDocs); err != nil {
		return traffic.Snapshot{}, fmt.Errorf("failed to load detections: %w", err)
	}

	var analyticsDocs []analyticsDoc
	if err := findAll(ctx, db.Collection(analyticsCollection), &analyticsDocs); err != nil {
		return traffic.Snapshot{}, fmt.Errorf("failed to load analytics: %w", err)
	}

	snapshot := traffic.Snapshot{TakenAt: time.Now()}
	for _, doc := range cameraDocs {
		snapshot.Cameras = append(snapshot.Cameras, doc.toObservation())
	}
	for _, doc := range detectionDocs {
		snapshot.Detections = append(snapshot.Detections, doc.toDetection())
	}
	for _, doc := range analyticsDocs {
		snapshot.Analytics = append(snapshot.Analytics, traffic.AnalyticsRecord{
			CameraID:        doc.CameraID,
			CongestionLevel: doc.CongestionLevel,
			TrafficDensity:  doc.TrafficDensity,
		})
	}
	return snapshot, nil
}

func findAll(ctx context.Context, collection *mongo.Collection, results interface{}) error {
	cursor, err := collection.Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	return cursor.All(ctx, results)
}

// cameraDoc mirrors the documents the analytics pipeline writes. Congestion
// fields are optional; missing ones are derived from the vehicle count.
type cameraDoc struct {
	CameraID        string  `bson:"cameraId"`
	Name            string  `bson:"name"`
	Latitude        float64 `bson:"latitude"`
	Longitude       float64 `bson:"longitude"`
	VehicleCount    int     `bson:"vehicleCount"`
	CongestionLevel string  `bson:"congestionLevel,omitempty"`
	AverageSpeedKmh float64 `bson:"averageSpeedKmh,omitempty"`
}

func (d cameraDoc) toObservation() traffic.CameraObservation {
	level := traffic.CongestionLevel(d.CongestionLevel)
	avgSpeed := d.AverageSpeedKmh
	if d.CongestionLevel == "" {
		level, avgSpeed = traffic.ClassifyCongestion(d.VehicleCount)
	}
	return traffic.CameraObservation{
		ID:              d.CameraID,
		Name:            d.Name,
		Position:        geo.Point{Latitude: d.Latitude, Longitude: d.Longitude},
		CongestionLevel: level,
		VehicleCount:    d.VehicleCount,
		AverageSpeedKmh: avgSpeed,
	}
}

type detectionDoc struct {
	CameraID      string    `bson:"cameraId"`
	DetectionType string    `bson:"detectionType"`
	Severity      string    `bson:"severity"`
	Confidence    float64   `bson:"confidence"`
	DetectedAt    time.Time `bson:"detectedAt"`
}

func (d detectionDoc) toDetection() traffic.Detection {
	return traffic.Detection{
		CameraID:      d.CameraID,
		DetectionType: traffic.DetectionType(d.DetectionType),
		Severity:      traffic.Severity(d.Severity),
		Confidence:    traffic.NormalizeConfidence(d.Confidence),
		DetectedAt:    d.DetectedAt,
	}
}

type analyticsDoc struct {
	CameraID        string  `bson:"cameraId"`
	CongestionLevel string  `bson:"congestionLevel"`
	TrafficDensity  float64 `bson:"trafficDensity"`
}
