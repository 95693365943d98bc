package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/vzo-kneginec/fire-brigade-api/api"
	"github.com/vzo-kneginec/fire-brigade-api/api/presence"
	"github.com/vzo-kneginec/fire-brigade-api/api/scheduler"
	"github.com/vzo-kneginec/fire-brigade-api/config"
	"github.com/vzo-kneginec/fire-brigade-api/databases"
	"github.com/vzo-kneginec/fire-brigade-api/models"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router   *mux.Router
	Config   config.Config
	Tracker  *presence.Tracker
	Hub      *LocationHub
	dbHelper databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	userDB := databases.NewUserDatabase(a.dbHelper)
	m := api.Auth{DB: userDB, Secret: []byte(a.Config.JWTSecret)}

	if a.Tracker == nil {
		a.Tracker = presence.NewTracker()
	}
	if a.Hub == nil {
		a.Hub = NewLocationHub(a.Tracker)
	}

	r := mux.NewRouter()
	r.Use(api.CORS(a.Config.CORSOrigins))

	auth := Auth{DB: userDB, Tokens: m}
	u := User{DB: userDB}
	h := Hydrant{DB: databases.NewHydrantDatabase(a.dbHelper)}
	v := Vehicle{DB: databases.NewVehicleDatabase(a.dbHelper)}
	e := Equipment{DB: databases.NewEquipmentDatabase(a.dbHelper)}
	s := Station{DB: databases.NewStationDatabase(a.dbHelper)}
	ev := Event{DB: databases.NewEventDatabase(a.dbHelper)}
	msg := Message{DB: databases.NewMessageDatabase(a.dbHelper)}
	iv := Intervention{DB: databases.NewInterventionDatabase(a.dbHelper)}
	chat := Chat{DB: databases.NewChatDatabase(a.dbHelper), UDB: userDB}
	loc := Location{
		DB:      databases.NewLocationDatabase(a.dbHelper),
		UDB:     userDB,
		Tracker: a.Tracker,
		Hub:     a.Hub,
	}
	upload := CloudinaryHandler{HDB: databases.NewHydrantDatabase(a.dbHelper)}
	rep := Report{
		UDB: userDB,
		VDB: databases.NewVehicleDatabase(a.dbHelper),
		EDB: databases.NewEquipmentDatabase(a.dbHelper),
	}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/register", http.HandlerFunc(auth.RegisterHandler)).Methods("POST")
	apiCreate.Handle("/auth/login", http.HandlerFunc(auth.LoginHandler)).Methods("POST")
	apiCreate.Handle("/auth/me", m.Middleware(http.HandlerFunc(auth.MeHandler))).Methods("GET")

	apiCreate.Handle("/users", m.Middleware(http.HandlerFunc(u.UsersHandler))).Methods("GET")
	apiCreate.Handle("/user/{user_id}", m.Middleware(http.HandlerFunc(u.UserByIDHandler))).Methods("GET")
	apiCreate.Handle("/user/{user_id}", m.Middleware(http.HandlerFunc(u.UpdateUserHandler))).Methods("PUT")
	apiCreate.Handle("/user/{user_id}", m.Middleware(http.HandlerFunc(u.DeleteUserHandler))).Methods("DELETE")

	apiCreate.Handle("/hydrants", m.Middleware(http.HandlerFunc(h.HydrantsHandler))).Methods("GET")
	apiCreate.Handle("/hydrant", m.Middleware(http.HandlerFunc(h.CreateHydrantHandler))).Methods("POST")
	apiCreate.Handle("/hydrant/{hydrant_id}", m.Middleware(http.HandlerFunc(h.HydrantByIDHandler))).Methods("GET")
	apiCreate.Handle("/hydrant/{hydrant_id}", m.Middleware(http.HandlerFunc(h.UpdateHydrantHandler))).Methods("PUT")
	apiCreate.Handle("/hydrant/{hydrant_id}", m.Middleware(http.HandlerFunc(h.DeleteHydrantHandler))).Methods("DELETE")
	apiCreate.Handle("/hydrant/{hydrant_id}/images", m.Middleware(http.HandlerFunc(upload.UploadHydrantImageHandler))).Methods("POST")

	apiCreate.Handle("/vehicles", m.Middleware(http.HandlerFunc(v.VehiclesHandler))).Methods("GET")
	apiCreate.Handle("/vehicle", m.Middleware(http.HandlerFunc(v.CreateVehicleHandler))).Methods("POST")
	apiCreate.Handle("/vehicle/{vehicle_id}", m.Middleware(http.HandlerFunc(v.VehicleByIDHandler))).Methods("GET")
	apiCreate.Handle("/vehicle/{vehicle_id}", m.Middleware(http.HandlerFunc(v.UpdateVehicleHandler))).Methods("PUT")
	apiCreate.Handle("/vehicle/{vehicle_id}", m.Middleware(http.HandlerFunc(v.DeleteVehicleHandler))).Methods("DELETE")

	apiCreate.Handle("/equipment", m.Middleware(http.HandlerFunc(e.EquipmentListHandler))).Methods("GET")
	apiCreate.Handle("/equipment", m.Middleware(http.HandlerFunc(e.CreateEquipmentHandler))).Methods("POST")
	apiCreate.Handle("/equipment/vehicle/{vehicle_id}", m.Middleware(http.HandlerFunc(e.EquipmentByVehicleHandler))).Methods("GET")
	apiCreate.Handle("/equipment/user/{user_id}", m.Middleware(http.HandlerFunc(e.EquipmentByUserHandler))).Methods("GET")
	apiCreate.Handle("/equipment/{equipment_id}", m.Middleware(http.HandlerFunc(e.EquipmentByIDHandler))).Methods("GET")
	apiCreate.Handle("/equipment/{equipment_id}", m.Middleware(http.HandlerFunc(e.UpdateEquipmentHandler))).Methods("PUT")
	apiCreate.Handle("/equipment/{equipment_id}", m.Middleware(http.HandlerFunc(e.DeleteEquipmentHandler))).Methods("DELETE")

	apiCreate.Handle("/stations", m.Middleware(http.HandlerFunc(s.StationsHandler))).Methods("GET")
	apiCreate.Handle("/station", m.Middleware(http.HandlerFunc(s.CreateStationHandler))).Methods("POST")
	apiCreate.Handle("/station/{station_id}", m.Middleware(http.HandlerFunc(s.StationByIDHandler))).Methods("GET")
	apiCreate.Handle("/station/{station_id}", m.Middleware(http.HandlerFunc(s.UpdateStationHandler))).Methods("PUT")
	apiCreate.Handle("/station/{station_id}", m.Middleware(http.HandlerFunc(s.DeleteStationHandler))).Methods("DELETE")

	apiCreate.Handle("/events", m.Middleware(http.HandlerFunc(ev.EventsHandler))).Methods("GET")
	apiCreate.Handle("/event", m.Middleware(http.HandlerFunc(ev.CreateEventHandler))).Methods("POST")
	apiCreate.Handle("/event/{event_id}", m.Middleware(http.HandlerFunc(ev.EventByIDHandler))).Methods("GET")
	apiCreate.Handle("/event/{event_id}", m.Middleware(http.HandlerFunc(ev.UpdateEventHandler))).Methods("PUT")
	apiCreate.Handle("/event/{event_id}", m.Middleware(http.HandlerFunc(ev.DeleteEventHandler))).Methods("DELETE")

	apiCreate.Handle("/messages", m.Middleware(http.HandlerFunc(msg.MessagesHandler))).Methods("GET")
	apiCreate.Handle("/message", m.Middleware(http.HandlerFunc(msg.CreateMessageHandler))).Methods("POST")
	apiCreate.Handle("/message/{message_id}", m.Middleware(http.HandlerFunc(msg.DeleteMessageHandler))).Methods("DELETE")

	apiCreate.Handle("/interventions", m.Middleware(http.HandlerFunc(iv.InterventionsHandler))).Methods("GET")
	apiCreate.Handle("/intervention", m.Middleware(http.HandlerFunc(iv.CreateInterventionHandler))).Methods("POST")
	apiCreate.Handle("/intervention/{intervention_id}", m.Middleware(http.HandlerFunc(iv.InterventionByIDHandler))).Methods("GET")
	apiCreate.Handle("/intervention/{intervention_id}", m.Middleware(http.HandlerFunc(iv.UpdateInterventionHandler))).Methods("PUT")
	apiCreate.Handle("/intervention/{intervention_id}", m.Middleware(http.HandlerFunc(iv.DeleteInterventionHandler))).Methods("DELETE")

	apiCreate.Handle("/chat/private/{user_id}", m.Middleware(http.HandlerFunc(chat.PrivateHistoryHandler))).Methods("GET")
	apiCreate.Handle("/chat/private/{user_id}", m.Middleware(http.HandlerFunc(chat.SendPrivateHandler))).Methods("POST")
	apiCreate.Handle("/chat/{group}", m.Middleware(http.HandlerFunc(chat.GroupHistoryHandler))).Methods("GET")
	apiCreate.Handle("/chat/{group}", m.Middleware(http.HandlerFunc(chat.SendGroupHandler))).Methods("POST")

	apiCreate.Handle("/locations/update", m.Middleware(http.HandlerFunc(loc.UpdateLocationHandler))).Methods("POST")
	apiCreate.Handle("/locations/active", m.Middleware(http.HandlerFunc(loc.ActiveLocationsHandler))).Methods("GET")

	apiCreate.Handle("/ws/location", m.Middleware(http.HandlerFunc(a.Hub.ServeWS)))

	apiCreate.Handle("/pdf/evidencijski-list/{department}", m.Middleware(http.HandlerFunc(rep.MemberRosterHandler))).Methods("GET")
	apiCreate.Handle("/pdf/oprema-vozilo/{department}", m.Middleware(http.HandlerFunc(rep.VehicleEquipmentHandler))).Methods("GET")
	apiCreate.Handle("/pdf/oprema-spremiste/{department}", m.Middleware(http.HandlerFunc(rep.StorageEquipmentHandler))).Methods("GET")
	apiCreate.Handle("/pdf/osobno-zaduzenje/{user_id}", m.Middleware(http.HandlerFunc(rep.PersonalAssignmentHandler))).Methods("GET")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("fire-brigade-api has connected to the database")

	// initialize api router
	a.initializeRoutes()

	// nightly inspection sweep
	sched := scheduler.New(
		databases.NewVehicleDatabase(a.dbHelper),
		databases.NewEquipmentDatabase(a.dbHelper),
		databases.NewUserDatabase(a.dbHelper),
	)
	sched.Start()

	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
