package entities

type ApplicationEndpoint struct {
	UserId      string `dynamodbav:"userId" json:"userId"`
	EndpointArn string `dynamodbav:"endpointArn" json:"endpointArn"`
}
