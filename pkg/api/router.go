package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/nourivox/nourivox-backend/pkg/api/handler"
	"github.com/nourivox/nourivox-backend/pkg/api/middleware"
)

// NewRouter wires the HTTP surface. All application routes live under /api.
func NewRouter(
	chatService handler.ChatService,
	voiceService handler.VoiceService,
	imageService handler.ImageService,
	appointmentService handler.AppointmentService,
	remindersRepo handler.RemindersRepository,
	doctorsRepo handler.DoctorsRepository,
	allowedOrigins []string,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	healthHandler := handler.NewHealth()
	chatHandler := handler.NewChat(chatService)
	voiceHandler := handler.NewVoice(voiceService)
	imageHandler := handler.NewImage(imageService)
	appointmentsHandler := handler.NewAppointments(appointmentService)
	remindersHandler := handler.NewReminders(remindersRepo)
	doctorsHandler := handler.NewDoctors(doctorsRepo)

	r.Get("/", healthHandler.Status)

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", chatHandler.Converse)

		r.Post("/voice", voiceHandler.Converse)
		r.Get("/voice/tts", voiceHandler.Speak)

		r.Post("/prescriptions/upload", imageHandler.Upload)

		r.Post("/appointments", appointmentsHandler.Create)
		r.Get("/appointments/{userID}", appointmentsHandler.ListByUser)

		r.Post("/reminders", remindersHandler.Create)
		r.Get("/reminders/{userID}", remindersHandler.ListByUser)

		r.Get("/doctors", doctorsHandler.List)
		r.Get("/doctors/{doctorID}", doctorsHandler.GetByID)
	})

	return r
}
