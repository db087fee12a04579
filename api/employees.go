package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sudsworks/laundromat_backend/models"
)

func ListEmployeesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		activeOnly := c.Query("active") == "true"
		employees, err := models.GetEmployees(c.Request.Context(), activeOnly)
		if err != nil {
			writeModelError(c, err)
			return
		}
		c.JSON(http.StatusOK, employees)
	}
}

func CreateEmployeeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewEmployee
		if !bindAndValidate(c, &input) {
			return
		}
		employee, err := models.CreateEmployee(c.Request.Context(), &input)
		if err != nil {
			// duplicate name / bad phone are caller mistakes, not 500s
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, employee)
	}
}

func UpdateEmployeeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input models.NewEmployee
		if !bindAndValidate(c, &input) {
			return
		}
		employee, err := models.UpdateEmployee(c.Request.Context(), id, &input)
		if err != nil {
			writeModelError(c, err)
			return
		}
		c.JSON(http.StatusOK, employee)
	}
}

func DeleteEmployeeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		employee, err := models.DeleteEmployee(c.Request.Context(), id)
		if err != nil {
			writeModelError(c, err)
			return
		}
		c.JSON(http.StatusOK, employee)
	}
}
