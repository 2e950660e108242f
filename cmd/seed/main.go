package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/tourfleet/internal/client"
	"github.com/ukydev/tourfleet/internal/config"
	"github.com/ukydev/tourfleet/internal/models"
)

// fleetAPI is the part of the REST client the seeder drives.
type fleetAPI interface {
	CreateVehicle(ctx context.Context, v models.Vehicle) (models.Vehicle, error)
	CreateDriver(ctx context.Context, d models.Driver) (models.Driver, error)
	CreateRoute(ctx context.Context, r models.Route) (models.Route, error)
	CreateAssignment(ctx context.Context, a models.Assignment) (models.Assignment, error)
}

type vehicleModel struct {
	Make     string
	Model    string
	Type     models.VehicleType
	Capacity int
}

var vehicleModels = []vehicleModel{
	{"Mercedes-Benz", "Sprinter", models.VehicleMinibus, 19},
	{"Volvo", "9700", models.VehicleBus, 48},
	{"Irizar", "i6", models.VehicleBus, 55},
	{"Ford", "Transit", models.VehicleVan, 14},
	{"Toyota", "Hiace", models.VehicleVan, 12},
	{"Toyota", "Land Cruiser", models.VehicleSUV, 7},
	{"Hyundai", "Sonata", models.VehicleCar, 4},
}

var tourRoutes = []models.Route{
	{Name: "Coastal Loop", Origin: "Harbor Terminal", Destination: "North Lighthouse", DistanceKm: 42, EstimatedDurationMin: 90, BaseFare: 25},
	{Name: "Wine Valley", Origin: "Central Station", Destination: "Valley Estates", DistanceKm: 118.5, EstimatedDurationMin: 150, BaseFare: 60},
	{Name: "Old Town Walk Shuttle", Origin: "Cathedral Square", Destination: "Castle Gate", DistanceKm: 6.5, EstimatedDurationMin: 25, BaseFare: 8},
	{Name: "Airport Transfer", Origin: "International Airport", Destination: "Hotel District", DistanceKm: 31, EstimatedDurationMin: 45, BaseFare: 18},
	{Name: "Mountain Lakes", Origin: "Central Station", Destination: "Blue Lake Lodge", DistanceKm: 205, EstimatedDurationMin: 240, BaseFare: 95},
	{Name: "Night Lights Tour", Origin: "Riverside Pier", Destination: "Riverside Pier", DistanceKm: 28, EstimatedDurationMin: 120, BaseFare: 35, Description: "Evening city tour"},
}

var (
	firstNames = []string{"Ana", "Bruno", "Carla", "Diego", "Elena", "Felipe", "Gabriela", "Hugo", "Isabel", "Jorge"}
	lastNames  = []string{"Silva", "Moreno", "Costa", "Ramos", "Vidal", "Pereira", "Castro", "Rojas"}
	categories = []string{"B", "C", "D", "D1"}
)

// summary counts what a seeding run created.
type summary struct {
	Vehicles    int
	Drivers     int
	Routes      int
	Assignments int
}

type seeder struct {
	api fleetAPI
	rnd *rand.Rand
	now time.Time
}

func (s *seeder) pick(n int) int { return s.rnd.Intn(n) }

func (s *seeder) createRoutes(ctx context.Context) []models.Route {
	created := make([]models.Route, 0, len(tourRoutes))
	for _, r := range tourRoutes {
		r.Status = models.RouteActive
		stored, err := s.api.CreateRoute(ctx, r)
		if err != nil {
			log.WithError(err).WithField("route", r.Name).Error("Failed to create route")
			continue
		}
		log.WithFields(log.Fields{"route_id": stored.ID, "name": stored.Name}).Info("Created route")
		created = append(created, stored)
	}
	return created
}

func (s *seeder) createVehicles(ctx context.Context, size int) []models.Vehicle {
	statuses := []models.VehicleStatus{models.VehicleAvailable, models.VehicleAvailable, models.VehicleAvailable, models.VehicleInService, models.VehicleMaintenance}
	created := make([]models.Vehicle, 0, size)
	for i := 0; i < size; i++ {
		m := vehicleModels[s.pick(len(vehicleModels))]
		v := models.Vehicle{
			Plate:           fmt.Sprintf("TUR-%03d", 100+i),
			Make:            m.Make,
			Model:           m.Model,
			Year:            2016 + s.pick(9),
			Capacity:        m.Capacity,
			Type:            m.Type,
			Status:          statuses[s.pick(len(statuses))],
			LastMaintenance: s.now.AddDate(0, -s.pick(6)-1, 0),
			NextMaintenance: s.now.AddDate(0, 0, s.pick(60)-5),
		}
		stored, err := s.api.CreateVehicle(ctx, v)
		if err != nil {
			log.WithError(err).WithField("plate", v.Plate).Error("Failed to create vehicle")
			continue
		}
		log.WithFields(log.Fields{
			"vehicle_id": stored.ID,
			"plate":      stored.Plate,
			"make":       stored.Make,
			"model":      stored.Model,
		}).Info("Created vehicle")
		created = append(created, stored)
	}
	return created
}

func (s *seeder) createDrivers(ctx context.Context, size int) []models.Driver {
	created := make([]models.Driver, 0, size)
	for i := 0; i < size; i++ {
		first := firstNames[s.pick(len(firstNames))]
		last := lastNames[s.pick(len(lastNames))]
		d := models.Driver{
			FirstName:       first,
			LastName:        last,
			DocumentNumber:  fmt.Sprintf("DOC-%06d", 1000+i),
			LicenseNumber:   fmt.Sprintf("LIC-%06d", 5000+i),
			LicenseCategory: categories[s.pick(len(categories))],
			LicenseExpiry:   s.now.AddDate(0, 0, s.pick(720)-20),
			Phone:           fmt.Sprintf("+1 555 %04d", s.pick(10000)),
			Email:           fmt.Sprintf("driver%d@tourfleet.example", i+1),
			Active:          s.pick(8) != 0,
		}
		stored, err := s.api.CreateDriver(ctx, d)
		if err != nil {
			log.WithError(err).WithField("document", d.DocumentNumber).Error("Failed to create driver")
			continue
		}
		log.WithFields(log.Fields{"driver_id": stored.ID, "name": stored.FullName()}).Info("Created driver")
		created = append(created, stored)
	}
	return created
}

// createAssignments spreads departures over the three days around now.
// Past departures are completed or cancelled, later ones scheduled.
func (s *seeder) createAssignments(ctx context.Context, vehicles []models.Vehicle, drivers []models.Driver, routes []models.Route, count int) int {
	if len(vehicles) == 0 || len(drivers) == 0 || len(routes) == 0 {
		return 0
	}
	created := 0
	for i := 0; i < count; i++ {
		v := vehicles[s.pick(len(vehicles))]
		d := drivers[s.pick(len(drivers))]
		r := routes[s.pick(len(routes))]

		departure := s.now.Add(time.Duration(s.pick(72)-24) * time.Hour).Truncate(15 * time.Minute)
		status := models.AssignmentScheduled
		if departure.Before(s.now) {
			status = models.AssignmentCompleted
			if s.pick(6) == 0 {
				status = models.AssignmentCancelled
			}
		}
		passengers := 1 + s.pick(v.Capacity)
		a := models.Assignment{
			VehicleID:   v.ID,
			DriverID:    d.ID,
			RouteID:     r.ID,
			DepartureAt: departure,
			Passengers:  passengers,
			Fare:        r.BaseFare * float64(passengers),
			Status:      status,
		}
		stored, err := s.api.CreateAssignment(ctx, a)
		if err != nil {
			log.WithError(err).WithFields(log.Fields{"vehicle_id": v.ID, "route_id": r.ID}).Error("Failed to create assignment")
			continue
		}
		log.WithFields(log.Fields{
			"assignment_id": stored.ID,
			"route":         r.Name,
			"departure":     departure.Format(time.RFC3339),
			"status":        stored.Status,
		}).Info("Created assignment")
		created++
	}
	return created
}

func (s *seeder) run(ctx context.Context, size int) summary {
	routes := s.createRoutes(ctx)
	vehicles := s.createVehicles(ctx, size)
	drivers := s.createDrivers(ctx, size)
	assignments := s.createAssignments(ctx, vehicles, drivers, routes, size*2)
	return summary{Vehicles: len(vehicles), Drivers: len(drivers), Routes: len(routes), Assignments: assignments}
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	if err := cfg.ConfigureLogging(); err != nil {
		log.WithError(err).Fatal("Failed to configure logging")
	}

	fleetSize := envInt("SEED_FLEET_SIZE", 10)
	token := os.Getenv("SEED_AUTH_TOKEN")
	if token == "" {
		token = cfg.FleetToken
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	api := client.New(cfg.APIBaseURL, token)
	if token == "" && cfg.AdminPassword != "" {
		if _, err := api.Login(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			log.WithError(err).Fatal("Failed to log in")
		}
	}

	log.WithFields(log.Fields{
		"fleet_size": fleetSize,
		"api_url":    cfg.APIBaseURL,
	}).Info("Seeding demo fleet")

	s := &seeder{api: api, rnd: rand.New(rand.NewSource(time.Now().UnixNano())), now: time.Now()}
	result := s.run(ctx, fleetSize)

	log.WithFields(log.Fields{
		"vehicles":    result.Vehicles,
		"drivers":     result.Drivers,
		"routes":      result.Routes,
		"assignments": result.Assignments,
	}).Info("Seeding completed")
	if result.Vehicles == 0 {
		log.Error("No vehicles created. Ensure SEED_AUTH_TOKEN is valid and the API is reachable.")
		os.Exit(1)
	}
}
