package docs

// @title Game Mate API
// @version 1.0
// @description Game recommendation backend: chat-driven search, bulk recommended lists, and Steam signal sync

// @contact.name API Support

// @host localhost:8080
// @BasePath /
// @schemes http https
