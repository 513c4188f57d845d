package handler

import (
	"net/http"

	"counting-down-back/internal/model"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListFlights(c *gin.Context) {
	flights, err := h.flights.List(c.Request.Context())
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, flights)
}

func (h *Handler) ListActiveFlights(c *gin.Context) {
	flights, err := h.flights.ListActive(c.Request.Context())
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, flights)
}

func (h *Handler) MostRecentActiveFlight(c *gin.Context) {
	flight, err := h.flights.MostRecentActive(c.Request.Context())
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *Handler) GetFlight(c *gin.Context) {
	flight, err := h.flights.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *Handler) CreateFlight(c *gin.Context) {
	var input model.FlightCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: "Invalid input"})
		return
	}
	flight, err := h.flights.Create(c.Request.Context(), input)
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusCreated, flight)
}

func (h *Handler) UpdateFlight(c *gin.Context) {
	var input model.FlightUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: "Invalid input"})
		return
	}
	flight, err := h.flights.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *Handler) DeleteFlight(c *gin.Context) {
	if err := h.flights.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.BooleanResponse{Success: true})
}

func (h *Handler) ListAirports(c *gin.Context) {
	airports, err := h.flights.ListAirports(c.Request.Context())
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, airports)
}

func (h *Handler) SearchAirports(c *gin.Context) {
	airports, err := h.flights.SearchAirports(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, airports)
}

func (h *Handler) GetAirport(c *gin.Context) {
	airport, err := h.flights.GetAirportByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, airport)
}
